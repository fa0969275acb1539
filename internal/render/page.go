package render

import (
	"html/template"

	"github.com/magabrotheeeer/blog-newsletter/internal/models"
)

// Kind перечисляет закрытый набор видов страниц приложения.
type Kind int

// Виды страниц.
const (
	KindHomeIndex Kind = iota
	KindPost
	KindSubscribeResponse
	KindConfirmSubscription
	KindDeleteSubscription
	KindConfirmEmail
	KindLogin
	KindDashboard
	KindNotFound
	KindInternalError
)

// Page — дискриминированное объединение "вид страницы + готовые данные".
// Каждая страница несёт собственную структуру данных и рендерится единственной
// функцией Registry.Render, без динамической диспетчеризации по интерфейсам.
type Page struct {
	Kind Kind
	Data any
}

// HomeIndexData данные главной страницы со списком статей.
type HomeIndexData struct {
	Posts []models.FrontMatter
}

// PostData данные страницы статьи: отрендеренный HTML и метаданные.
type PostData struct {
	Post     template.HTML
	MetaData models.FrontMatter
}

// SubscribeResponseData данные inline-фрагмента ответа на форму подписки.
type SubscribeResponseData struct {
	HasError bool
	ErrorMsg string
}

// ConfirmSubscriptionData данные страницы подтверждения подписки.
type ConfirmSubscriptionData struct {
	AlreadyVerified bool
}

// ConfirmEmailData данные письма с подтверждением подписки.
type ConfirmEmailData struct {
	AppBaseURL string
	Token      string
}

// LoginData данные страницы входа администратора.
type LoginData struct {
	HasError bool
	ErrorMsg string
}

// DashboardData данные панели управления.
type DashboardData struct {
	AdminEmail  string
	Total       int
	Subscribers []*models.Subscriber
}

// HomeIndexPage собирает страницу главного листинга.
func HomeIndexPage(posts []models.FrontMatter) Page {
	return Page{Kind: KindHomeIndex, Data: HomeIndexData{Posts: posts}}
}

// PostPage собирает страницу статьи.
func PostPage(html string, meta models.FrontMatter) Page {
	return Page{Kind: KindPost, Data: PostData{Post: template.HTML(html), MetaData: meta}}
}

// SubscribeResponsePage собирает фрагмент успешного ответа формы подписки.
func SubscribeResponsePage() Page {
	return Page{Kind: KindSubscribeResponse, Data: SubscribeResponseData{}}
}

// SubscribeErrorPage собирает фрагмент ответа формы подписки с ошибкой.
func SubscribeErrorPage(msg string) Page {
	return Page{Kind: KindSubscribeResponse, Data: SubscribeResponseData{HasError: true, ErrorMsg: msg}}
}

// ConfirmSubscriptionPage собирает страницу подтверждения подписки.
func ConfirmSubscriptionPage(alreadyVerified bool) Page {
	return Page{Kind: KindConfirmSubscription, Data: ConfirmSubscriptionData{AlreadyVerified: alreadyVerified}}
}

// DeleteSubscriptionPage собирает страницу отписки.
func DeleteSubscriptionPage() Page {
	return Page{Kind: KindDeleteSubscription}
}

// ConfirmEmailPage собирает тело письма с подтверждением подписки.
func ConfirmEmailPage(appBaseURL, token string) Page {
	return Page{Kind: KindConfirmEmail, Data: ConfirmEmailData{AppBaseURL: appBaseURL, Token: token}}
}

// LoginPage собирает страницу входа.
func LoginPage(errorMsg string) Page {
	return Page{Kind: KindLogin, Data: LoginData{HasError: errorMsg != "", ErrorMsg: errorMsg}}
}

// DashboardPage собирает страницу панели управления.
func DashboardPage(adminEmail string, total int, subscribers []*models.Subscriber) Page {
	return Page{Kind: KindDashboard, Data: DashboardData{AdminEmail: adminEmail, Total: total, Subscribers: subscribers}}
}

// templateName сопоставляет вид страницы с именем шаблона в каталоге шаблонов.
func (k Kind) templateName() string {
	switch k {
	case KindHomeIndex:
		return "home.html"
	case KindPost:
		return "post.html"
	case KindSubscribeResponse:
		return "subscribe_response.html"
	case KindConfirmSubscription:
		return "confirm_subscription.html"
	case KindDeleteSubscription:
		return "delete_subscription.html"
	case KindConfirmEmail:
		return "confirm_sub_email.html"
	case KindLogin:
		return "login.html"
	case KindDashboard:
		return "dashboard.html"
	case KindNotFound:
		return "error_404.html"
	case KindInternalError:
		return "error_500.html"
	}
	return ""
}
