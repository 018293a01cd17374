package order

import (
	"fmt"
	"strings"
)

// RenderSummary lists the chosen colors and the collected details for the
// party to confirm. Missing details render empty.
func RenderSummary(s *Session) string {
	var sb strings.Builder
	sb.WriteString("Підтвердіть ваше замовлення:\n\n")

	for _, c := range s.Colors {
		qty := 0
		if c.Quantity != nil {
			qty = *c.Quantity
		}
		fmt.Fprintf(&sb, "%s: %d %s\n", c.Name, qty, CoilLabel(qty))
	}

	fmt.Fprintf(&sb, "\nПІБ: %s\n", s.field(FieldName))
	fmt.Fprintf(&sb, "Телефон: %s\n", s.field(FieldPhone))
	fmt.Fprintf(&sb, "Доставка: %s\n", s.field(FieldDelivery))
	fmt.Fprintf(&sb, "Населений пункт: %s\n", s.field(FieldCity))
	fmt.Fprintf(&sb, "Відділення/Поштомат/Індекс: %s\n", s.field(FieldOffice))
	fmt.Fprintf(&sb, "Коментар: %s\n", s.field(FieldComment))

	return sb.String()
}
