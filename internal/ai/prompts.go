package ai

import (
	"fmt"
	"strings"

	"github.com/01moynul/taptosell-creatives/internal/models"
)

func importPrompt(url string, language models.Language) string {
	return fmt.Sprintf(`You are an expert dropshipping product importer. Analyze the product from the URL: %s.
Extract the following information and translate it to %s:
- A compelling product title.
- A detailed and persuasive product description.
- A list of product variations (like color, size).
- The supplier's price in USD (make a realistic estimate).

IMPORTANT: Provide ONLY a JSON object in the following format, without any markdown formatting or extra text:
{"title": "...", "description": "...", "variations": ["...", "..."], "supplierPrice": 0.00}`, url, language)
}

func videoScriptPrompt(p models.Product, platform models.Platform, language models.Language) string {
	return fmt.Sprintf(`Create a short, punchy, and highly engaging video script for a %s ad for the product "%s".
The script should be in %s.
Product description: "%s".
It should follow the AIDA model (Attention, Interest, Desire, Action).
Describe scenes, on-screen text, and voiceover/narration.
The goal is to stop the scroll and drive clicks.`, platform, p.Title, language, p.Description)
}

func lifestyleImagePrompt(p models.Product) string {
	return fmt.Sprintf(`Create a photorealistic, high-quality lifestyle image of a person happily using a "%s". The setting should be modern and aspirational. Show the product in a clear but natural way. The image should be vibrant and eye-catching.`, p.Title)
}

func adCopyPrompt(p models.Product, platform models.Platform, language models.Language) string {
	return fmt.Sprintf(`Write a persuasive and high-converting ad copy for a %s post.
The language must be %s.
Product: "%s".
Description: "%s".
Include emojis, a strong hook, key benefits, and a clear call-to-action.`, platform, language, p.Title, p.Description)
}

func salesPagePrompt(p models.Product, language models.Language) string {
	icons := "'" + strings.Join(models.BenefitIcons, "', '") + "'"
	return fmt.Sprintf(`You are an expert direct-response copywriter. Write a complete, high-converting landing page in %s for the product:
Title: "%s"
Description: "%s"

The landing page must include:
1. A powerful, benefit-driven headline.
2. An engaging opening paragraph that identifies a customer pain point and introduces the product as the solution.
3. A section with 3 key benefits, each with an icon name (use one of %s), a title, and a short description.
4. A "How It Works" section explaining how easy it is to use.
5. A social proof section with 2 realistic-looking customer testimonials (include name, text, and a rating out of 5).
6. An urgency/scarcity section to encourage immediate purchase.
7. A strong, clear Call-To-Action (CTA) text.

IMPORTANT: Provide ONLY a JSON object with the structure defined below, without any markdown or extra text.
{
  "headline": "...",
  "opening": "...",
  "benefits": [{"icon": "...", "title": "...", "text": "..."}],
  "howItWorks": "...",
  "testimonials": [{"name": "...", "text": "...", "rating": 5}],
  "urgency": "...",
  "cta": "..."
}`, language, p.Title, p.Description, icons)
}
