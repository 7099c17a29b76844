package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Layout
	message.SetString(lang, "site.name", "Arctic Fresh")
	message.SetString(lang, "site.tagline", "Premium frozen vegetables and fruits for export")
	message.SetString(lang, "nav.home", "Home")
	message.SetString(lang, "nav.products", "Products")
	message.SetString(lang, "nav.about", "About")
	message.SetString(lang, "nav.contact", "Contact")
	message.SetString(lang, "nav.wishlist", "Wishlist")
	message.SetString(lang, "nav.switch", "العربية")
	message.SetString(lang, "footer.rights", "© %s Arctic Fresh. All rights reserved.")

	// Home
	message.SetString(lang, "home.hero", "Frozen at peak freshness, delivered worldwide")
	message.SetString(lang, "home.featured", "Featured products")
	message.SetString(lang, "home.categories", "Browse by category")
	message.SetString(lang, "home.cta", "Request a quote")
	message.SetString(lang, "home.new", "New arrivals")

	// About
	message.SetString(lang, "about.title", "About us")
	message.SetString(lang, "about.body", "We source, process and IQF-freeze vegetables and fruits for importers, distributors and food service operators across the Gulf, Europe and Africa.")

	// Products
	message.SetString(lang, "products.title", "Our products")
	message.SetString(lang, "products.search", "Search products")
	message.SetString(lang, "products.all", "All categories")
	message.SetString(lang, "products.featured", "Featured")
	message.SetString(lang, "products.new", "New")
	message.SetString(lang, "products.sort.newest", "Newest")
	message.SetString(lang, "products.sort.oldest", "Oldest")
	message.SetString(lang, "products.sort.name", "Name")
	message.SetString(lang, "products.empty", "No products match your filters.")
	message.SetString(lang, "products.count", "%d products")
	message.SetString(lang, "products.prev", "Previous")
	message.SetString(lang, "products.next", "Next")
	message.SetString(lang, "product.weight", "Packing")
	message.SetString(lang, "product.min_order", "Minimum order")
	message.SetString(lang, "product.grade", "Grade")
	message.SetString(lang, "product.related", "Related products")
	message.SetString(lang, "product.like", "Add to wishlist")
	message.SetString(lang, "product.unlike", "Remove from wishlist")

	// Wishlist
	message.SetString(lang, "wishlist.title", "Your wishlist")
	message.SetString(lang, "wishlist.empty", "Your wishlist is empty.")
	message.SetString(lang, "wishlist.clear", "Clear wishlist")
	message.SetString(lang, "wishlist.quote", "Request a quote for these products")

	// Contact & quote
	message.SetString(lang, "contact.title", "Contact us")
	message.SetString(lang, "contact.name", "Name")
	message.SetString(lang, "contact.full_name", "Full name")
	message.SetString(lang, "contact.email", "Email")
	message.SetString(lang, "contact.phone", "Phone")
	message.SetString(lang, "contact.company", "Company")
	message.SetString(lang, "contact.country", "Country")
	message.SetString(lang, "contact.subject", "Subject")
	message.SetString(lang, "contact.message", "Message")
	message.SetString(lang, "contact.send", "Send")
	message.SetString(lang, "contact.sent", "Thank you. We will get back to you shortly.")
	message.SetString(lang, "quote.sent", "Your quote request was received. Our sales team will contact you.")

	// Admin
	message.SetString(lang, "admin.login", "Admin sign in")
	message.SetString(lang, "admin.username", "Username")
	message.SetString(lang, "admin.password", "Password")
	message.SetString(lang, "admin.sign_in", "Sign in")
	message.SetString(lang, "admin.sign_out", "Sign out")
	message.SetString(lang, "admin.dashboard", "Dashboard")
	message.SetString(lang, "admin.inquiries", "Recent inquiries")
	message.SetString(lang, "admin.mail_off", "Email delivery is not configured; inquiries are only logged.")
	message.SetString(lang, "admin.products", "Products")
	message.SetString(lang, "admin.categories", "Categories")
	message.SetString(lang, "admin.media", "Image storage")

	// Errors
	message.SetString(lang, "page.not_found", "Page not found")
	message.SetString(lang, "page.error", "Something went wrong. Please try again.")
	message.SetString(lang, "err.slug_required", "Slug is required")
	message.SetString(lang, "err.slug_invalid", "Slug may only contain lowercase letters, digits and dashes")
	message.SetString(lang, "err.slug_taken", "This slug is already in use")
	message.SetString(lang, "err.name_en_required", "English name is required")
	message.SetString(lang, "err.name_ar_required", "Arabic name is required")
	message.SetString(lang, "err.category_required", "Category is required")
	message.SetString(lang, "err.name_required", "Please enter your name")
	message.SetString(lang, "err.name_too_long", "Name is too long")
	message.SetString(lang, "err.email_required", "Please enter your email address")
	message.SetString(lang, "err.email_invalid", "Please enter a valid email address")
	message.SetString(lang, "err.phone_required", "Please enter your phone number")
	message.SetString(lang, "err.phone_invalid", "Please enter a valid phone number")
	message.SetString(lang, "err.subject_required", "Please enter a subject")
	message.SetString(lang, "err.message_required", "Please enter a message")
	message.SetString(lang, "err.products_required", "Please select at least one product")
	message.SetString(lang, "err.bad_credentials", "Invalid username or password")
	message.SetString(lang, "err.rate_limited", "Too many requests. Please try again later.")
	message.SetString(lang, "err.not_found", "The requested item was not found")
	message.SetString(lang, "err.invalid_body", "The request could not be read")
	message.SetString(lang, "err.search_invalid", "Enter a valid search term")
	message.SetString(lang, "err.category_invalid", "Unknown category")
	message.SetString(lang, "err.ref_invalid", "Invalid product reference")
	message.SetString(lang, "err.file_required", "Choose an image to upload")
	message.SetString(lang, "err.file_type", "Only PNG, JPG, GIF and WebP images are accepted")
	message.SetString(lang, "err.file_too_large", "The image is too large")
	message.SetString(lang, "err.internal", "Something went wrong. Please try again.")
	message.SetString(lang, "err.csrf", "Security check failed. Please refresh and try again.")
}
