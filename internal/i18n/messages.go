package i18n

import "fmt"

// Key names a user-facing text.
type Key int

const (
	FillAllFields Key = iota
	PasswordTooShort
	LoginFailed
	RegisterFailed
	ConnectionError
	LoadFailed
	EnterCategory
	Searching
	SendingAll
	ConfirmSendAll
	SearchFailed
	SendAllFailed
	GenerateFailed
	SendFailed
	StatusUpdated
	ActionFailed
	UnknownCommand
	UnknownStatus

	TitleLogin
	TitleRegister
	FieldName
	FieldEmail
	FieldSendEmail
	FieldPassword
	ButtonLogin
	ButtonRegister
	ButtonSwitchToRegister
	ButtonSwitchToLogin
	ButtonGenerate
	ButtonGenerating
	ButtonSend
	ButtonSending
	ButtonSimulateReply
	ButtonSendMessage
	ButtonYes
	ButtonNo
	TabLetter
	TabChat
	LabelCategory
	LabelStatus
	LabelSubject
	LabelPhone
	LabelWebsite
	LabelAddress
	LabelCreated
	LabelSentAt
	NoCompanies
	NoLetter
	NoMessages
	ComposerHint
	Working
)

var russianTexts = map[Key]string{
	FillAllFields:    "Заполните все поля",
	PasswordTooShort: "Пароль должен быть не менее 6 символов",
	LoginFailed:      "Ошибка входа",
	RegisterFailed:   "Ошибка регистрации",
	ConnectionError:  "Ошибка подключения к серверу",
	LoadFailed:       "Ошибка загрузки данных",
	EnterCategory:    "Введите категорию для поиска",
	Searching:        "Ищем «%s» через AI...",
	SendingAll:       "Массовая генерация и отправка писем...",
	ConfirmSendAll:   "Сгенерировать и отправить письма ВСЕМ новым компаниям?",
	SearchFailed:     "Ошибка поиска: %s",
	SendAllFailed:    "Ошибка рассылки: %s",
	GenerateFailed:   "Ошибка генерации: %s",
	SendFailed:       "Ошибка отправки: %s",
	StatusUpdated:    "Статус обновлён",
	ActionFailed:     "Ошибка: %s",
	UnknownCommand:   "Неизвестная команда: %s",
	UnknownStatus:    "Неизвестный статус: %s",

	TitleLogin:             "Вход",
	TitleRegister:          "Регистрация",
	FieldName:              "Имя",
	FieldEmail:             "Email",
	FieldSendEmail:         "Email для отправки",
	FieldPassword:          "Пароль",
	ButtonLogin:            "Войти",
	ButtonRegister:         "Создать аккаунт",
	ButtonSwitchToRegister: "Нет аккаунта?",
	ButtonSwitchToLogin:    "Уже есть аккаунт?",
	ButtonGenerate:         "Сгенерировать AI письмо",
	ButtonGenerating:       "Генерируем...",
	ButtonSend:             "Отправить письмо",
	ButtonSending:          "Отправка...",
	ButtonSimulateReply:    "Симулировать ответ",
	ButtonSendMessage:      "Отправить",
	ButtonYes:              "Да",
	ButtonNo:               "Отмена",
	TabLetter:              "Письмо",
	TabChat:                "Переписка",
	LabelCategory:          "Категория",
	LabelStatus:            "Статус",
	LabelSubject:           "Тема",
	LabelPhone:             "Телефон",
	LabelWebsite:           "Сайт",
	LabelAddress:           "Адрес",
	LabelCreated:           "Добавлена",
	LabelSentAt:            "Письмо отправлено",
	NoCompanies:            "Компаний пока нет. Найдите их через поиск.",
	NoLetter:               "Письмо ещё не сгенерировано",
	NoMessages:             "Сообщений пока нет",
	ComposerHint:           "Enter отправить, Esc назад",
	Working:                "Выполняется...",
}

var englishTexts = map[Key]string{
	FillAllFields:    "Fill in all fields",
	PasswordTooShort: "Password must be at least 6 characters",
	LoginFailed:      "Login failed",
	RegisterFailed:   "Registration failed",
	ConnectionError:  "Could not connect to the server",
	LoadFailed:       "Failed to load data",
	EnterCategory:    "Enter a category to search for",
	Searching:        "Searching for “%s” with AI...",
	SendingAll:       "Generating and sending letters...",
	ConfirmSendAll:   "Generate and send letters to ALL new companies?",
	SearchFailed:     "Search failed: %s",
	SendAllFailed:    "Bulk send failed: %s",
	GenerateFailed:   "Generation failed: %s",
	SendFailed:       "Send failed: %s",
	StatusUpdated:    "Status updated",
	ActionFailed:     "Error: %s",
	UnknownCommand:   "Unknown command: %s",
	UnknownStatus:    "Unknown status: %s",

	TitleLogin:             "Sign in",
	TitleRegister:          "Sign up",
	FieldName:              "Name",
	FieldEmail:             "Email",
	FieldSendEmail:         "Sending email",
	FieldPassword:          "Password",
	ButtonLogin:            "Sign in",
	ButtonRegister:         "Create account",
	ButtonSwitchToRegister: "No account?",
	ButtonSwitchToLogin:    "Have an account?",
	ButtonGenerate:         "Generate AI letter",
	ButtonGenerating:       "Generating...",
	ButtonSend:             "Send letter",
	ButtonSending:          "Sending...",
	ButtonSimulateReply:    "Simulate reply",
	ButtonSendMessage:      "Send",
	ButtonYes:              "Yes",
	ButtonNo:               "Cancel",
	TabLetter:              "Letter",
	TabChat:                "Chat",
	LabelCategory:          "Category",
	LabelStatus:            "Status",
	LabelSubject:           "Subject",
	LabelPhone:             "Phone",
	LabelWebsite:           "Website",
	LabelAddress:           "Address",
	LabelCreated:           "Added",
	LabelSentAt:            "Email sent",
	NoCompanies:            "No companies yet. Find some with search.",
	NoLetter:               "No letter generated yet",
	NoMessages:             "No messages yet",
	ComposerHint:           "Enter to send, Esc to go back",
	Working:                "Working...",
}

// Text returns the text for key, formatted with args when given.
func (c *Catalog) Text(key Key, args ...any) string {
	s, ok := c.texts[key]
	if !ok {
		return fmt.Sprintf("!(%d)", key)
	}
	if len(args) == 0 {
		return s
	}
	return fmt.Sprintf(s, args...)
}
