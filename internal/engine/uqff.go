package engine

// UQFFTextModelBuilder configures a text model loaded from precompiled UQFF
// artifacts. It embeds a TextModelBuilder with the artifact source
// pre-applied, so every other setter and Build are available unchanged;
// callers should avoid the UQFF-related setters.
type UQFFTextModelBuilder struct {
	*TextModelBuilder
}

// NewUQFFTextModelBuilder applies the same defaults as NewTextModelBuilder
// and pins the given UQFF artifact paths as the loading source.
func NewUQFFTextModelBuilder(modelID string, uqffFiles []string) *UQFFTextModelBuilder {
	return &UQFFTextModelBuilder{TextModelBuilder: NewTextModelBuilder(modelID).FromUQFF(uqffFiles)}
}

// Inner returns the wrapped builder. No information is lost by unwrapping.
func (b *UQFFTextModelBuilder) Inner() *TextModelBuilder { return b.TextModelBuilder }
