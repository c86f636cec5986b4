// Package i18n holds the static UI string tables. Tables are plain data
// keyed by a language tag; the language is resolved once at startup and
// never changes mid-session.
package i18n

import (
	"os"
	"strings"
)

// Language is a supported UI language tag.
type Language string

const (
	LangEN Language = "en"
	LangRU Language = "ru"
)

// ActionMeta is the display metadata for one action kind.
type ActionMeta struct {
	Title       string
	Description string
	Button      string
}

// Copy holds every translatable UI string.
type Copy struct {
	ReadPanel        string
	ActionConsole    string
	Token            string
	TotalSupply      string
	Decimals         string
	Owner            string
	YourBalance      string
	AllowanceSpender string
	AllowanceHint    string
	ActionLabel      string
	FromAddress      string
	ToAddress        string
	SpenderAddress   string
	AmountLabel      string
	Processing       string
	PendingTx        string
	ConfirmedTx      string
	FailedTx         string
	NotConnected     string
	NotSet           string
	NA               string
	ProvideContract  string

	ErrNoContract string
	ErrNoWallet   string
	ErrAmount     string
	ErrAddress    string
	ErrRejected   string

	Actions map[string]ActionMeta
}

var tables = map[Language]*Copy{
	LangEN: {
		ReadPanel:        "Read Panel",
		ActionConsole:    "Action Console",
		Token:            "Token",
		TotalSupply:      "Total supply",
		Decimals:         "Decimals",
		Owner:            "Owner",
		YourBalance:      "Your balance",
		AllowanceSpender: "Allowance (spender)",
		AllowanceHint:    "Allowance updates when you enter a spender address.",
		ActionLabel:      "Action",
		FromAddress:      "From address",
		ToAddress:        "To address",
		SpenderAddress:   "Spender address",
		AmountLabel:      "Amount",
		Processing:       "Processing...",
		PendingTx:        "Pending transaction",
		ConfirmedTx:      "Confirmed transaction",
		FailedTx:         "Failed transaction",
		NotConnected:     "Not connected",
		NotSet:           "Not set",
		NA:               "N/A",
		ProvideContract:  "Provide a valid contract address to enable actions.",

		ErrNoContract: "Set a valid contract address first.",
		ErrNoWallet:   "Connect your wallet to send transactions.",
		ErrAmount:     "Enter a valid amount (use decimals if needed).",
		ErrAddress:    "Fill in all required addresses for this action.",
		ErrRejected:   "Submission cancelled.",

		Actions: map[string]ActionMeta{
			"transfer": {
				Title:       "Transfer",
				Description: "Send tokens from your wallet to another address.",
				Button:      "Send tokens",
			},
			"approve": {
				Title:       "Approve",
				Description: "Grant a spender allowance to use your tokens.",
				Button:      "Approve spender",
			},
			"transferFrom": {
				Title:       "Transfer From",
				Description: "Move tokens from an owner using your allowance.",
				Button:      "Transfer using allowance",
			},
			"mint": {
				Title:       "Mint",
				Description: "Owner-only: mint new tokens to any address.",
				Button:      "Mint tokens",
			},
			"burn": {
				Title:       "Burn",
				Description: "Destroy tokens from your wallet and reduce supply.",
				Button:      "Burn tokens",
			},
			"burnFrom": {
				Title:       "Burn From",
				Description: "Burn tokens from an owner using your allowance.",
				Button:      "Burn using allowance",
			},
			"increaseAllowance": {
				Title:       "Increase Allowance",
				Description: "Add more allowance without resetting it.",
				Button:      "Increase allowance",
			},
			"decreaseAllowance": {
				Title:       "Decrease Allowance",
				Description: "Reduce allowance safely without resetting it.",
				Button:      "Decrease allowance",
			},
		},
	},
	LangRU: {
		ReadPanel:        "Панель чтения",
		ActionConsole:    "Консоль действий",
		Token:            "Токен",
		TotalSupply:      "Общее предложение",
		Decimals:         "Дробность",
		Owner:            "Владелец",
		YourBalance:      "Ваш баланс",
		AllowanceSpender: "Разрешение (spender)",
		AllowanceHint:    "Лимит обновляется, когда вы вводите адрес spender.",
		ActionLabel:      "Действие",
		FromAddress:      "Адрес отправителя",
		ToAddress:        "Адрес получателя",
		SpenderAddress:   "Адрес spender",
		AmountLabel:      "Сумма",
		Processing:       "В обработке...",
		PendingTx:        "Ожидается транзакция",
		ConfirmedTx:      "Транзакция подтверждена",
		FailedTx:         "Транзакция не прошла",
		NotConnected:     "Не подключен",
		NotSet:           "Не задан",
		NA:               "Н/Д",
		ProvideContract:  "Укажите корректный адрес контракта, чтобы включить действия.",

		ErrNoContract: "Сначала укажите корректный адрес контракта.",
		ErrNoWallet:   "Подключите кошелек, чтобы отправлять транзакции.",
		ErrAmount:     "Введите корректную сумму (можно с десятичной частью).",
		ErrAddress:    "Заполните все обязательные адреса для этого действия.",
		ErrRejected:   "Отправка отменена.",

		Actions: map[string]ActionMeta{
			"transfer": {
				Title:       "Перевод",
				Description: "Отправьте токены со своего кошелька на другой адрес.",
				Button:      "Отправить токены",
			},
			"approve": {
				Title:       "Одобрение",
				Description: "Разрешите spender использовать ваши токены.",
				Button:      "Одобрить spender",
			},
			"transferFrom": {
				Title:       "Transfer From",
				Description: "Переместите токены со счета владельца, используя allowance.",
				Button:      "Перевести по allowance",
			},
			"mint": {
				Title:       "Mint",
				Description: "Только владелец: выпуск новых токенов на любой адрес.",
				Button:      "Выпустить токены",
			},
			"burn": {
				Title:       "Burn",
				Description: "Уничтожьте токены со своего кошелька и уменьшите supply.",
				Button:      "Сжечь токены",
			},
			"burnFrom": {
				Title:       "Burn From",
				Description: "Сожгите токены владельца, используя allowance.",
				Button:      "Сжечь по allowance",
			},
			"increaseAllowance": {
				Title:       "Increase Allowance",
				Description: "Увеличьте allowance, не сбрасывая его.",
				Button:      "Увеличить allowance",
			},
			"decreaseAllowance": {
				Title:       "Decrease Allowance",
				Description: "Уменьшите allowance безопасно, без сброса.",
				Button:      "Уменьшить allowance",
			},
		},
	},
}

// Resolve picks the copy table for a language tag, falling back through
// the LANG environment variable to English. Matching is by primary
// subtag, so "ru-RU" resolves to Russian.
func Resolve(tag string) *Copy {
	if tag == "" {
		tag = os.Getenv("LANG")
	}
	tag = strings.ToLower(tag)
	if strings.HasPrefix(tag, "ru") {
		return tables[LangRU]
	}
	return tables[LangEN]
}

// Action returns display metadata for an action kind, with a bare-name
// fallback for unknown kinds.
func (c *Copy) Action(kind string) ActionMeta {
	if meta, ok := c.Actions[kind]; ok {
		return meta
	}
	return ActionMeta{Title: kind, Description: kind, Button: kind}
}
