package loader

import "fmt"

// ArchKind names a supported model architecture. Empty means "detect from
// the model's config at load time".
type ArchKind string

const (
	ArchAuto    ArchKind = ""
	ArchLlama   ArchKind = "llama"
	ArchMistral ArchKind = "mistral"
	ArchMixtral ArchKind = "mixtral"
	ArchPhi3    ArchKind = "phi3"
	ArchQwen2   ArchKind = "qwen2"
	ArchGemma2  ArchKind = "gemma2"
)

// ParseArchKind validates a user-supplied architecture name.
func ParseArchKind(s string) (ArchKind, error) {
	switch k := ArchKind(s); k {
	case ArchAuto, ArchLlama, ArchMistral, ArchMixtral, ArchPhi3, ArchQwen2, ArchGemma2:
		return k, nil
	default:
		return ArchAuto, ErrUnknownArchitecture(s)
	}
}

// ISQType is an in-place quantization scheme applied to weights at load.
type ISQType string

const (
	ISQNone ISQType = ""
	ISQQ2K  ISQType = "q2k"
	ISQQ3K  ISQType = "q3k"
	ISQQ4K  ISQType = "q4k"
	ISQQ5K  ISQType = "q5k"
	ISQQ6K  ISQType = "q6k"
	ISQQ8_0 ISQType = "q8_0"
	ISQHQQ4 ISQType = "hqq4"
	ISQHQQ8 ISQType = "hqq8"
)

// ISQOrganization selects which modules in-place quantization applies to.
type ISQOrganization string

const (
	// OrgDefault quantizes every eligible weight.
	OrgDefault ISQOrganization = "default"
	// OrgMoQE quantizes mixture-of-experts layers only.
	OrgMoQE ISQOrganization = "moqe"
)

// DType is the numeric precision weights are loaded in.
type DType string

const (
	DTypeAuto DType = "auto"
	DTypeF16  DType = "f16"
	DTypeBF16 DType = "bf16"
	DTypeF32  DType = "f32"
)

// TokenSourceKind enumerates where the hub credential comes from.
type TokenSourceKind string

const (
	TokenKindCache   TokenSourceKind = "cache"
	TokenKindLiteral TokenSourceKind = "literal"
	TokenKindEnv     TokenSourceKind = "env"
	TokenKindPath    TokenSourceKind = "path"
	TokenKindNone    TokenSourceKind = "none"
)

// TokenSource locates the credential used for remote model access.
type TokenSource struct {
	Kind  TokenSourceKind
	Value string
}

func TokenFromCache() TokenSource { return TokenSource{Kind: TokenKindCache} }

func TokenLiteral(tok string) TokenSource {
	return TokenSource{Kind: TokenKindLiteral, Value: tok}
}

func TokenFromEnv(name string) TokenSource { return TokenSource{Kind: TokenKindEnv, Value: name} }

func TokenFromPath(p string) TokenSource { return TokenSource{Kind: TokenKindPath, Value: p} }

func TokenNone() TokenSource { return TokenSource{Kind: TokenKindNone} }

func (t TokenSource) String() string {
	if t.Kind == TokenKindCache || t.Kind == TokenKindNone || t.Kind == "" {
		return string(t.Kind)
	}
	return fmt.Sprintf("%s:%s", t.Kind, t.Value)
}
