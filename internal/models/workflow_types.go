package models

import "fmt"

// Step is a stage of the guided workflow. Steps only ever move forward.
type Step string

const (
	StepImport    Step = "IMPORT"
	StepCreatives Step = "CREATIVES"
	StepSalesPage Step = "SALES_PAGE"
)

var stepOrder = map[Step]int{
	StepImport:    0,
	StepCreatives: 1,
	StepSalesPage: 2,
}

// Index returns the position of the step in the flow, or -1 if unknown.
func (s Step) Index() int {
	if i, ok := stepOrder[s]; ok {
		return i
	}
	return -1
}

// Before reports whether s comes earlier in the flow than other.
func (s Step) Before(other Step) bool {
	return s.Index() < other.Index()
}

// StepInfo describes a step for the progress indicator.
type StepInfo struct {
	ID          Step   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Steps is the step catalogue shown by the progress indicator.
var Steps = []StepInfo{
	{ID: StepImport, Name: "1. Importar Produto", Description: "Cole a URL do produto"},
	{ID: StepCreatives, Name: "2. Gerar Criativos", Description: "Crie vídeos e imagens com IA"},
	{ID: StepSalesPage, Name: "3. Criar Página", Description: "Gere uma página de vendas"},
}

// Language is a target language for generated content.
type Language string

const (
	LanguagePortuguese Language = "Portuguese"
	LanguageEnglish    Language = "English"
	LanguageSpanish    Language = "Spanish"
)

// DefaultLanguage is used until the user picks one at import time.
const DefaultLanguage = LanguagePortuguese

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	switch l {
	case LanguagePortuguese, LanguageEnglish, LanguageSpanish:
		return true
	}
	return false
}

// Kind identifies a generation operation and its loading flag.
type Kind string

const (
	KindImporting Kind = "importing"
	KindVideo     Kind = "video"
	KindImages    Kind = "images"
	KindCopy      Kind = "copy"
	KindPage      Kind = "page"
)

// ParseCreativeKind accepts the three creative kinds of the second step.
func ParseCreativeKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindVideo, KindImages, KindCopy:
		return k, nil
	}
	return "", fmt.Errorf("unknown creative kind %q", s)
}

// LoadingState tracks which generation operations are in flight.
type LoadingState struct {
	Importing bool `json:"importing"`
	Video     bool `json:"video"`
	Images    bool `json:"images"`
	Copy      bool `json:"copy"`
	Page      bool `json:"page"`
}

// Get returns the flag for kind.
func (l LoadingState) Get(kind Kind) bool {
	switch kind {
	case KindImporting:
		return l.Importing
	case KindVideo:
		return l.Video
	case KindImages:
		return l.Images
	case KindCopy:
		return l.Copy
	case KindPage:
		return l.Page
	}
	return false
}

// With returns a copy of l with the flag for kind set to busy.
func (l LoadingState) With(kind Kind, busy bool) LoadingState {
	switch kind {
	case KindImporting:
		l.Importing = busy
	case KindVideo:
		l.Video = busy
	case KindImages:
		l.Images = busy
	case KindCopy:
		l.Copy = busy
	case KindPage:
		l.Page = busy
	}
	return l
}
