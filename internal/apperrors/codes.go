package apperrors

// Code is a stable error identifier, independent of HTTP status. The numeric
// families are: 4xxx validation, 5xxx calculation, 55xx system.
type Code string

// Validation errors (4xxx)
const (
	CodeRequiredFieldMissing Code = "4001"
	CodeOutOfRange           Code = "4002"
	CodeBadFormat            Code = "4003"
	CodeHTMLDetected         Code = "4004"
	CodeURLInvalid           Code = "4005"
	CodeImageTooLarge        Code = "4006"
	CodeStringTooLong        Code = "4007"
)

// Calculation errors (5xxx)
const (
	CodeDivisionByZero   Code = "5001"
	CodeInvalidParameter Code = "5002"
	CodeOverflow         Code = "5003"
	CodeNegativeValue    Code = "5004"
	CodeLoanCalculation  Code = "5005"
	CodeIRRNotConverged  Code = "5006"
	CodeTaxCalculation   Code = "5007"
	CodeDepreciation     Code = "5008"
)

// System errors (55xx)
const (
	CodeGeneral    Code = "5500"
	CodeTimeout    Code = "5501"
	CodeMemory     Code = "5502"
	CodeDependency Code = "5503"
)

// Auth errors, produced by the transport middleware only.
const (
	CodeUnauthorized     Code = "4010"
	CodeForbidden        Code = "4030"
	CodeMethodNotAllowed Code = "4050"
)

type catalogEntry struct {
	Message  string
	Solution string
}

// catalog maps every code to its user-facing Japanese message and a
// suggested remedy. Raw causes never appear here; they are gated by dev mode
// at response time.
var catalog = map[Code]catalogEntry{
	CodeRequiredFieldMissing: {"必須項目が入力されていません", "入力内容をご確認のうえ、必須項目を入力してください"},
	CodeOutOfRange:           {"入力値が許容範囲外です", "項目ごとの上限・下限の範囲内で入力してください"},
	CodeBadFormat:            {"入力形式が正しくありません", "数値項目には数値を入力してください"},
	CodeHTMLDetected:         {"使用できない文字が含まれています", "HTMLタグなどの特殊な記述を除いて入力してください"},
	CodeURLInvalid:           {"URLの形式が正しくありません", "http:// または https:// で始まるURLを入力してください"},
	CodeImageTooLarge:        {"画像サイズが大きすぎます", "5MB以下の画像をご利用ください"},
	CodeStringTooLong:        {"入力文字数が上限を超えています", "文字数を減らして再度お試しください"},

	CodeDivisionByZero:   {"計算中にエラーが発生しました", "入力値をご確認のうえ、再度お試しください"},
	CodeInvalidParameter: {"計算条件が不正です", "入力値をご確認のうえ、再度お試しください"},
	CodeOverflow:         {"計算結果が大きすぎます", "金額の入力値をご確認ください"},
	CodeNegativeValue:    {"計算条件に負の値が含まれています", "金額には0以上の値を入力してください"},
	CodeLoanCalculation:  {"ローン計算でエラーが発生しました", "借入条件をご確認のうえ、再度お試しください"},
	CodeIRRNotConverged:  {"IRRが収束しませんでした", "キャッシュフローの前提条件をご確認ください"},
	CodeTaxCalculation:   {"税金計算でエラーが発生しました", "税率の入力値をご確認ください"},
	CodeDepreciation:     {"減価償却の計算でエラーが発生しました", "建物価格と償却年数をご確認ください"},

	CodeGeneral:    {"サーバーエラーが発生しました", "しばらく時間をおいて再度お試しください"},
	CodeTimeout:    {"処理がタイムアウトしました", "しばらく時間をおいて再度お試しください"},
	CodeMemory:     {"サーバーが混み合っています", "しばらく時間をおいて再度お試しください"},
	CodeDependency: {"外部サービスとの連携に失敗しました", "しばらく時間をおいて再度お試しください"},

	CodeUnauthorized:     {"認証に失敗しました", "APIキーをご確認ください"},
	CodeForbidden:        {"この操作を行う権限がありません", "アカウントの権限をご確認ください"},
	CodeMethodNotAllowed: {"許可されていないリクエストです", "リクエスト方法をご確認ください"},
}

// Message returns the user-facing message for a code. Unknown codes fall
// back to the general system error.
func Message(code Code) string {
	if e, ok := catalog[code]; ok {
		return e.Message
	}
	return catalog[CodeGeneral].Message
}

// Solution returns the suggested remedy for a code.
func Solution(code Code) string {
	if e, ok := catalog[code]; ok {
		return e.Solution
	}
	return catalog[CodeGeneral].Solution
}
