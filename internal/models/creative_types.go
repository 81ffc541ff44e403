package models

// Platform is a social network an ad creative is written for.
type Platform string

const (
	PlatformTikTok   Platform = "TikTok"
	PlatformFacebook Platform = "Facebook"
	PlatformReels    Platform = "Reels"
)

// Platforms lists the ad-copy platforms in their fixed generation order.
var Platforms = []Platform{PlatformTikTok, PlatformFacebook, PlatformReels}

// LifestyleImageCount is how many lifestyle images one batch produces.
const LifestyleImageCount = 4

// AdCopy holds one ad text per platform.
type AdCopy struct {
	TikTok   string `json:"tiktok"`
	Facebook string `json:"facebook"`
	Reels    string `json:"reels"`
}

// AdCreative accumulates the marketing material generated for a product.
// Every field is filled independently; nil means "not generated yet".
type AdCreative struct {
	VideoScript     *string  `json:"videoScript,omitempty"`
	LifestyleImages []string `json:"lifestyleImages,omitempty"`
	AdCopy          *AdCopy  `json:"adCopy,omitempty"`
}

// Clone returns a deep copy of the creative.
func (a AdCreative) Clone() AdCreative {
	out := AdCreative{LifestyleImages: cloneStrings(a.LifestyleImages)}
	if a.VideoScript != nil {
		s := *a.VideoScript
		out.VideoScript = &s
	}
	if a.AdCopy != nil {
		c := *a.AdCopy
		out.AdCopy = &c
	}
	return out
}
