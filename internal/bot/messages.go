package bot

const (
	MenuCatalog  = "Подивитись каталог"
	MenuOrder    = "Замовити"
	MenuContacts = "Контакти"

	ButtonFinish  = "Завершити вибір"
	ButtonConfirm = "Підтвердити"
	ButtonCancel  = "Відмінити"
	ButtonContact = "📱 Надіслати контакт"
)

const (
	msgWelcome        = "Вітаю! Обери дію:"
	msgChooseColors   = "Обери кольори ротангу (натисни кнопки):"
	msgEnterQuantity  = "Введіть кількість бухт для кольору \"%s\":"
	msgEditQuantity   = "Введи кількість (у бухтах) для %s:"
	msgQuantitySet    = "Кількість для %s встановлено: %d %s.\nЯкщо хочеш додати/змінити кількість інших кольорів — обирай їх у каталозі або заверши вибір."
	msgColorChosen    = "Обрано %s"
	msgEnterName      = "Введи, будь ласка, ПІБ:"
	msgEnterPhone     = "Введи телефон:"
	msgChooseDelivery = "Оберіть спосіб доставки:"
	msgEnterCity      = "Введи населений пункт і область:"
	msgEnterOffice    = "Введи номер відділення / поштомату / індекс:"
	msgEnterComment   = "Якщо є коментар — введи його, або напиши 'немає':"
	msgOrderSent      = "Замовлення відправлено!"
	msgOrderCancelled = "Замовлення скасовано."
	msgNewOrder       = "Якщо хочеш зробити нове замовлення — напиши /start"
	msgResetDone      = "Замовлення скасовано. Напиши /start, щоб почати заново."
	msgNothingToReset = "Активного замовлення немає. Напиши /start, щоб почати."
	msgHelp           = "Доступні команди:\n/start - Почати нове замовлення\n/cancel - Скасувати поточне замовлення\n/help - Показати цю довідку"
)

// Rejection texts.
const (
	errNotStarted       = "Почни замовлення командою /start"
	errDuplicate        = "%s вже обрано"
	errNoColors         = "Спочатку вибери хоча б один колір!"
	errMissingQuantity  = "Введи кількість для %s!"
	errNotANumber       = "Введи, будь ласка, число (кількість бухт)."
	errEmptyText        = "Поле не може бути порожнім."
	errUnknownOption    = "Невідомий варіант, скористайся кнопками."
	errUseCatalog       = "Обери кольори в каталозі або заверши вибір."
	errUseDeliveryMenu  = "Оберіть спосіб доставки кнопкою."
	errUseConfirmButton = "Підтвердіть або відмініть замовлення кнопкою."
	errWrongStep        = "Зараз це недоступно. Продовжуй поточний крок або напиши /cancel."
	errInternal         = "Помилка при обробці запиту. Спробуй ще раз."
	errUnknownCommand   = "Невідома команда. Напиши /start, щоб почати."
	errNoArchive        = "Архів замовлень не налаштовано."
)
