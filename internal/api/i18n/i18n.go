// Package i18n renders response messages in the caller's language.
package i18n

import (
	"github.com/gofiber/fiber/v2"
)

// Supported languages.
const (
	Turkish = "tr"
	English = "en"
)

const localsKey = "locale"

// Success message keys.
const (
	KeyOK                  = "ok"
	KeyInsuranceCreated    = "insurance.created"
	KeyInsuranceUpdated    = "insurance.updated"
	KeyInsuranceDeleted    = "insurance.deleted"
	KeyInsuranceActivated  = "insurance.activated"
	KeyInsuranceDeactivate = "insurance.deactivated"
	KeyApplicationCreated  = "application.created"
	KeyLoginSucceeded      = "admin.login_succeeded"
	KeyInvalidBody         = "validation.invalid_body"
	KeyInvalidDate         = "validation.invalid_date"
	KeyInvalidQuery        = "validation.invalid_query"
	KeyRouteNotFound       = "route.not_found"
	KeyInternal            = "internal"
)

var messages = map[string]map[string]string{
	KeyOK:                  {Turkish: "İşlem başarılı", English: "Request succeeded"},
	KeyInsuranceCreated:    {Turkish: "Sigorta başarıyla oluşturuldu", English: "Insurance created"},
	KeyInsuranceUpdated:    {Turkish: "Sigorta başarıyla güncellendi", English: "Insurance updated"},
	KeyInsuranceDeleted:    {Turkish: "Sigorta başarıyla silindi", English: "Insurance deleted"},
	KeyInsuranceActivated:  {Turkish: "Sigorta durumu aktif olarak güncellendi", English: "Insurance status set to active"},
	KeyInsuranceDeactivate: {Turkish: "Sigorta durumu pasif olarak güncellendi", English: "Insurance status set to inactive"},
	KeyApplicationCreated:  {Turkish: "Başvuru başarıyla oluşturuldu", English: "Application submitted"},
	KeyLoginSucceeded:      {Turkish: "Giriş başarılı", English: "Login successful"},
	KeyInvalidBody:         {Turkish: "Geçersiz veri", English: "Invalid request body"},
	KeyInvalidDate:         {Turkish: "Geçersiz tarih formatı", English: "Invalid date format"},
	KeyInvalidQuery:        {Turkish: "Geçersiz sorgu parametresi", English: "Invalid query parameter"},
	KeyRouteNotFound:       {Turkish: "İstenen kaynak bulunamadı", English: "Resource not found"},
	KeyInternal:            {Turkish: "Beklenmeyen bir hata oluştu", English: "An unexpected error occurred"},

	"insurance.not_found":             {Turkish: "Sigorta bulunamadı", English: "Insurance not found"},
	"insurance.duplicate_name":        {Turkish: "Bu isimde bir sigorta zaten mevcut", English: "An insurance with this name already exists"},
	"insurance.has_applications":      {Turkish: "Bu sigortaya ait başvurular bulunduğu için silinemez", English: "Insurance has applications and cannot be deleted"},
	"insurance.name_required":         {Turkish: "Sigorta adı boş olamaz", English: "Insurance name is required"},
	"insurance.name_too_long":         {Turkish: "Sigorta adı en fazla 200 karakter olabilir", English: "Insurance name must be at most 200 characters"},
	"insurance.description_too_long":  {Turkish: "Açıklama en fazla 1000 karakter olabilir", English: "Description must be at most 1000 characters"},
	"application.not_found":           {Turkish: "Başvuru bulunamadı", English: "Application not found"},
	"application.phone_required":      {Turkish: "Telefon numarası boş olamaz", English: "Phone number is required"},
	"application.phone_too_long":      {Turkish: "Telefon numarası en fazla 15 karakter olabilir", English: "Phone number must be at most 15 characters"},
	"application.date_required":       {Turkish: "Tarih seçilmelidir", English: "A date must be selected"},
	"application.date_in_past":        {Turkish: "Seçilen tarih bugünden önce olamaz", English: "Selected date cannot be in the past"},
	"application.insurance_not_found": {Turkish: "Seçilen sigorta bulunamadı", English: "Selected insurance not found"},
	"application.insurance_inactive":  {Turkish: "Seçilen sigorta aktif değil", English: "Selected insurance is not active"},
	"admin.credentials_required":      {Turkish: "Kullanıcı adı ve şifre boş olamaz", English: "Username and password are required"},
	"admin.invalid_credentials":       {Turkish: "Kullanıcı adı veya şifre hatalı", English: "Invalid username or password"},
	"admin.not_found":                 {Turkish: "Admin bulunamadı", English: "Admin not found"},
	"auth.invalid_token":              {Turkish: "Geçersiz veya süresi dolmuş oturum", English: "Invalid or expired token"},
	"auth.missing_header":             {Turkish: "Yetkilendirme başlığı eksik", English: "Missing authorization header"},
	"auth.invalid_header":             {Turkish: "Geçersiz yetkilendirme başlığı", English: "Invalid authorization header"},
	"auth.required":                   {Turkish: "Bu işlem için giriş yapmalısınız", English: "Authentication required"},
	"auth.admin_required":             {Turkish: "Bu işlem için yönetici yetkisi gerekir", English: "Admin role required"},
	"report.invalid_sort":             {Turkish: "Sıralama asc veya desc olmalıdır", English: "Sort must be asc or desc"},
	"report.invalid_range":            {Turkish: "Bitiş tarihi başlangıç tarihinden önce olamaz", English: "createdTo must not be before createdFrom"},
}

// Supported reports whether messages exist for lang.
func Supported(lang string) bool {
	return lang == Turkish || lang == English
}

// Middleware picks the response language from Accept-Language, falling back to defaultLang.
func Middleware(defaultLang string) fiber.Handler {
	if !Supported(defaultLang) {
		defaultLang = Turkish
	}
	offers := []string{defaultLang, Turkish, English}
	return func(c *fiber.Ctx) error {
		lang := defaultLang
		if c.Get(fiber.HeaderAcceptLanguage) != "" {
			if match := c.AcceptsLanguages(offers...); match != "" {
				lang = match
			}
		}
		c.Locals(localsKey, lang)
		return c.Next()
	}
}

// Lang returns the language chosen for the request.
func Lang(c *fiber.Ctx) string {
	if lang, ok := c.Locals(localsKey).(string); ok && lang != "" {
		return lang
	}
	return Turkish
}

// Translate renders key in lang. Unknown keys return fallback.
func Translate(lang, key, fallback string) string {
	if texts, ok := messages[key]; ok {
		if text, ok := texts[lang]; ok {
			return text
		}
		if text, ok := texts[Turkish]; ok {
			return text
		}
	}
	return fallback
}

// T renders key in the request's language.
func T(c *fiber.Ctx, key string) string {
	return Translate(Lang(c), key, key)
}
