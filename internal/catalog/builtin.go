package catalog

import (
	"github.com/vanixstudio/vanix-bff/internal/domain"

	"github.com/shopspring/decimal"
)

// Default returns the catalog shipped with the storefront.
func Default() *Catalog {
	return New(builtinProducts())
}

func builtinProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "vanix-website-starter",
			Slug:        "product1",
			Title:       "Website Starter",
			Subtitle:    "Next.js + Tailwind landing page (fast, clean, SEO-ready).",
			Description: "A fast, modern landing page built with Next.js + Tailwind. Clean sections, strong CTA layout, and SEO-ready structure.",
			PriceEUR:    decimal.NewFromInt(149),
			Category:    domain.CategoryWebsite,
			Tags:        []string{"Next.js", "Tailwind", "SEO"},
			Image:       "starterimage.png",
			Featured:    true,
			Deliverables: []string{
				"Landing page UI", "Responsive layout", "SEO basics", "Setup notes",
			},
			Timeline: "2–3 days (typical)",
			FAQ: []domain.FAQ{
				{Q: "Can you deploy it for me?", A: "Yes, we can deploy to Vercel/Netlify on request."},
				{Q: "Do I get the source code?", A: "Yes, source files and setup notes are included."},
			},
		},
		{
			ID:          "vanix-website-business",
			Slug:        "product2",
			Title:       "Business Website",
			Subtitle:    "Multi-page website with sections, contact form, and CMS-ready structure.",
			Description: "A multi-page website for a business: clear structure, contact section, and a scalable layout that can later be connected to a CMS.",
			PriceEUR:    decimal.NewFromInt(399),
			Category:    domain.CategoryWebsite,
			Tags:        []string{"Multi-page", "Branding", "Responsive"},
			Image:       "buisness.png",
			Featured:    true,
			Deliverables: []string{
				"Multiple pages", "Responsive sections", "Contact form UI", "Scalable structure",
			},
			Timeline: "5–10 days (typical)",
			FAQ: []domain.FAQ{
				{Q: "Is it CMS-ready?", A: "Yes, it is structured so a CMS is easy to connect later."},
				{Q: "Do you include copywriting?", A: "Not by default, but we can help with guidance."},
			},
		},
		{
			ID:          "vanix-ecommerce-ui",
			Slug:        "product3",
			Title:       "E-commerce UI Pack",
			Subtitle:    "Reusable UI blocks for a modern shop (cart, filters, product cards).",
			Description: "A reusable UI pack for e-commerce: product cards, filters, cart patterns, and clean layout blocks that you can plug into your store.",
			PriceEUR:    decimal.NewFromInt(79),
			Category:    domain.CategoryUIKit,
			Tags:        []string{"UI", "Components", "Shop"},
			Image:       "e-commerce.png",
			Deliverables: []string{
				"UI components", "Cart patterns", "Filter patterns", "Layout blocks",
			},
			Timeline: "1–2 days (typical)",
			FAQ: []domain.FAQ{
				{Q: "Does it include backend?", A: "No, this is UI only. Supabase or Stripe can be integrated later."},
				{Q: "Is it responsive?", A: "Yes."},
			},
		},
		{
			ID:          "vanix-app-dashboard",
			Slug:        "product4",
			Title:       "Admin Dashboard",
			Subtitle:    "Dashboard layout with tables, charts placeholders, and responsive sidebar.",
			Description: "Admin dashboard UI: sidebar navigation, tables, and chart placeholders (ready for your real data).",
			PriceEUR:    decimal.NewFromInt(199),
			Category:    domain.CategoryApp,
			Tags:        []string{"Dashboard", "Admin", "Layout"},
			Image:       "admindashboard.png",
			Deliverables: []string{
				"Dashboard layout", "Responsive sidebar", "Table UI", "Chart placeholders",
			},
			Timeline: "3–5 days (typical)",
			FAQ: []domain.FAQ{
				{Q: "Do charts work?", A: "Placeholders by default. Real data can be wired when you are ready."},
				{Q: "Can you connect Supabase?", A: "Yes, on request."},
			},
		},
		{
			ID:          "vanix-logo-pack",
			Slug:        "product5",
			Title:       "Logo + Brand Pack",
			Subtitle:    "Logo concepts + simple brand rules (colors, typography suggestions).",
			Description: "Logo concepts plus simple brand rules: color direction and typography suggestions for consistent visuals.",
			PriceEUR:    decimal.NewFromInt(129),
			Category:    domain.CategoryDesign,
			Tags:        []string{"Logo", "Brand", "Identity"},
			Image:       "logo+brand.png",
			Deliverables: []string{
				"Logo concepts", "Color suggestions", "Typography direction", "Basic brand rules",
			},
			Timeline: "2–4 days (typical)",
			FAQ: []domain.FAQ{
				{Q: "Do I get vector files?", A: "Yes (SVG/PNG), depending on the final direction."},
				{Q: "How many concepts?", A: "Typically 2–3 initial concepts."},
			},
		},
		{
			ID:          "vanix-ui-audit",
			Slug:        "product6",
			Title:       "UI/UX Audit",
			Subtitle:    "Practical feedback list (visual hierarchy, spacing, usability, consistency).",
			Description: "A practical UI/UX audit with actionable feedback: hierarchy, spacing, usability issues, consistency, and quick wins.",
			PriceEUR:    decimal.NewFromInt(59),
			Category:    domain.CategoryOther,
			Tags:        []string{"Audit", "UX", "Checklist"},
			Image:       "uiux.png",
			Deliverables: []string{
				"Actionable checklist", "Priority issues", "Quick wins", "Consistency notes",
			},
			Timeline: "1–2 days (typical)",
			FAQ: []domain.FAQ{
				{Q: "Do you redesign too?", A: "Yes. Audit first, redesign as a follow-up."},
				{Q: "What do you need from me?", A: "A link to your site or app, or screenshots."},
			},
		},
	}
}
