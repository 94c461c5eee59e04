package iobject

import (
	"embed"

	"github.com/kaptinlin/go-i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

// NewI18nBundle loads the embedded message catalog, following the same
// bundle-construction shape used throughout this package's localizable
// errors: a default locale plus whatever locales ship in locales/*.json.
func NewI18nBundle() (*i18n.I18n, error) {
	bundle := i18n.NewBundle(
		i18n.WithDefaultLocale("en"),
	)
	if err := bundle.LoadFS(localesFS, "locales/*.json"); err != nil {
		return nil, err
	}
	return bundle, nil
}

var defaultBundle *i18n.I18n

func init() {
	b, err := NewI18nBundle()
	if err != nil {
		// The embedded catalog is part of the module; a load failure here
		// means the build itself is broken, not a runtime condition.
		panic(err)
	}
	defaultBundle = b
}

// Localize renders a CodecError's message through the given localizer,
// falling back to the error's own Message when the kind has no catalog
// entry (e.g. a kind contributed by a caller's custom TypeDef) or when
// localizer is nil. params supplies the template variables referenced
// by the catalog entry (e.g. "path", "min", "max").
func Localize(e *CodecError, localizer *i18n.Localizer, params map[string]any) string {
	if localizer == nil {
		return e.Message
	}
	if _, known := errorCategories[e.Kind]; !known {
		return e.Message
	}
	if params == nil {
		params = map[string]any{}
	}
	params["path"] = e.Path
	return localizer.Get(e.Kind, i18n.Vars(params))
}

// NewLocalizer returns a Localizer for locale, backed by the embedded
// catalog loaded into defaultBundle at init time.
func NewLocalizer(locale string) *i18n.Localizer {
	return defaultBundle.NewLocalizer(locale)
}
