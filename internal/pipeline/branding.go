package pipeline

// Branding holds the fixed strings merged into every formatted post. It is
// injected into the Formatter so the literals live in exactly one place.
type Branding struct {
	BrandName          string
	DefaultTitle       string
	DefaultDescription string
	PromoSuffix        string
}

// These literals are part of the published-post contract and must not drift.
const (
	trinityBrandName = "Trinity Catholic Media"
	trinityCTA       = "Stay inspired daily! Follow our WhatsApp channel for the latest Bible verses: " +
		"https://whatsapp.com/channel/0029VbAhLis0rGiVQd0HSw03"
)

// TrinityBranding returns the production branding for Trinity Catholic Media.
func TrinityBranding() Branding {
	return Branding{
		BrandName:          trinityBrandName,
		DefaultTitle:       trinityBrandName,
		DefaultDescription: trinityCTA,
		PromoSuffix:        "\n\n" + trinityCTA,
	}
}
