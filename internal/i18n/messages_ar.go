package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.Arabic

	// Layout
	message.SetString(lang, "site.name", "آركتك فريش")
	message.SetString(lang, "site.tagline", "خضروات وفواكه مجمدة فاخرة للتصدير")
	message.SetString(lang, "nav.home", "الرئيسية")
	message.SetString(lang, "nav.products", "المنتجات")
	message.SetString(lang, "nav.about", "من نحن")
	message.SetString(lang, "nav.contact", "اتصل بنا")
	message.SetString(lang, "nav.wishlist", "المفضلة")
	message.SetString(lang, "nav.switch", "English")
	message.SetString(lang, "footer.rights", "© %s آركتك فريش. جميع الحقوق محفوظة.")

	// Home
	message.SetString(lang, "home.hero", "مجمدة في قمة نضارتها، تصل إلى كل أنحاء العالم")
	message.SetString(lang, "home.featured", "منتجات مميزة")
	message.SetString(lang, "home.categories", "تصفح حسب الفئة")
	message.SetString(lang, "home.cta", "اطلب عرض سعر")
	message.SetString(lang, "home.new", "وصل حديثاً")

	// About
	message.SetString(lang, "about.title", "من نحن")
	message.SetString(lang, "about.body", "نقوم بتوريد وتصنيع وتجميد الخضروات والفواكه بتقنية التجميد السريع للمستوردين والموزعين ومشغلي خدمات الطعام في الخليج وأوروبا وأفريقيا.")

	// Products
	message.SetString(lang, "products.title", "منتجاتنا")
	message.SetString(lang, "products.search", "ابحث في المنتجات")
	message.SetString(lang, "products.all", "كل الفئات")
	message.SetString(lang, "products.featured", "مميز")
	message.SetString(lang, "products.new", "جديد")
	message.SetString(lang, "products.sort.newest", "الأحدث")
	message.SetString(lang, "products.sort.oldest", "الأقدم")
	message.SetString(lang, "products.sort.name", "الاسم")
	message.SetString(lang, "products.empty", "لا توجد منتجات مطابقة.")
	message.SetString(lang, "products.count", "%d منتج")
	message.SetString(lang, "products.prev", "السابق")
	message.SetString(lang, "products.next", "التالي")
	message.SetString(lang, "product.weight", "التعبئة")
	message.SetString(lang, "product.min_order", "الحد الأدنى للطلب")
	message.SetString(lang, "product.grade", "الدرجة")
	message.SetString(lang, "product.related", "منتجات ذات صلة")
	message.SetString(lang, "product.like", "أضف إلى المفضلة")
	message.SetString(lang, "product.unlike", "إزالة من المفضلة")

	// Wishlist
	message.SetString(lang, "wishlist.title", "قائمتك المفضلة")
	message.SetString(lang, "wishlist.empty", "قائمتك المفضلة فارغة.")
	message.SetString(lang, "wishlist.clear", "إفراغ القائمة")
	message.SetString(lang, "wishlist.quote", "اطلب عرض سعر لهذه المنتجات")

	// Contact & quote
	message.SetString(lang, "contact.title", "اتصل بنا")
	message.SetString(lang, "contact.name", "الاسم")
	message.SetString(lang, "contact.full_name", "الاسم الكامل")
	message.SetString(lang, "contact.email", "البريد الإلكتروني")
	message.SetString(lang, "contact.phone", "الهاتف")
	message.SetString(lang, "contact.company", "الشركة")
	message.SetString(lang, "contact.country", "الدولة")
	message.SetString(lang, "contact.subject", "الموضوع")
	message.SetString(lang, "contact.message", "الرسالة")
	message.SetString(lang, "contact.send", "إرسال")
	message.SetString(lang, "contact.sent", "شكراً لك. سنتواصل معك قريباً.")
	message.SetString(lang, "quote.sent", "تم استلام طلب عرض السعر. سيتواصل معك فريق المبيعات.")

	// Admin
	message.SetString(lang, "admin.login", "دخول المشرف")
	message.SetString(lang, "admin.username", "اسم المستخدم")
	message.SetString(lang, "admin.password", "كلمة المرور")
	message.SetString(lang, "admin.sign_in", "دخول")
	message.SetString(lang, "admin.sign_out", "خروج")
	message.SetString(lang, "admin.dashboard", "لوحة التحكم")
	message.SetString(lang, "admin.inquiries", "أحدث الاستفسارات")
	message.SetString(lang, "admin.mail_off", "البريد الإلكتروني غير مهيأ؛ يتم تسجيل الاستفسارات فقط.")
	message.SetString(lang, "admin.products", "المنتجات")
	message.SetString(lang, "admin.categories", "الفئات")
	message.SetString(lang, "admin.media", "تخزين الصور")

	// Errors
	message.SetString(lang, "page.not_found", "الصفحة غير موجودة")
	message.SetString(lang, "page.error", "حدث خطأ ما. يرجى المحاولة مرة أخرى.")
	message.SetString(lang, "err.slug_required", "المعرف مطلوب")
	message.SetString(lang, "err.slug_invalid", "يجب أن يحتوي المعرف على أحرف إنجليزية صغيرة وأرقام وشرطات فقط")
	message.SetString(lang, "err.slug_taken", "هذا المعرف مستخدم بالفعل")
	message.SetString(lang, "err.name_en_required", "الاسم الإنجليزي مطلوب")
	message.SetString(lang, "err.name_ar_required", "الاسم العربي مطلوب")
	message.SetString(lang, "err.category_required", "الفئة مطلوبة")
	message.SetString(lang, "err.name_required", "يرجى إدخال الاسم")
	message.SetString(lang, "err.name_too_long", "الاسم طويل جداً")
	message.SetString(lang, "err.email_required", "يرجى إدخال البريد الإلكتروني")
	message.SetString(lang, "err.email_invalid", "يرجى إدخال بريد إلكتروني صحيح")
	message.SetString(lang, "err.phone_required", "يرجى إدخال رقم الهاتف")
	message.SetString(lang, "err.phone_invalid", "يرجى إدخال رقم هاتف صحيح")
	message.SetString(lang, "err.subject_required", "يرجى إدخال الموضوع")
	message.SetString(lang, "err.message_required", "يرجى إدخال الرسالة")
	message.SetString(lang, "err.products_required", "يرجى اختيار منتج واحد على الأقل")
	message.SetString(lang, "err.bad_credentials", "اسم المستخدم أو كلمة المرور غير صحيحة")
	message.SetString(lang, "err.rate_limited", "طلبات كثيرة جداً. يرجى المحاولة لاحقاً.")
	message.SetString(lang, "err.not_found", "العنصر المطلوب غير موجود")
	message.SetString(lang, "err.invalid_body", "تعذرت قراءة الطلب")
	message.SetString(lang, "err.search_invalid", "أدخل عبارة بحث صحيحة")
	message.SetString(lang, "err.category_invalid", "فئة غير معروفة")
	message.SetString(lang, "err.ref_invalid", "مرجع منتج غير صالح")
	message.SetString(lang, "err.file_required", "اختر صورة لرفعها")
	message.SetString(lang, "err.file_type", "يقبل فقط صور PNG وJPG وGIF وWebP")
	message.SetString(lang, "err.file_too_large", "حجم الصورة كبير جداً")
	message.SetString(lang, "err.internal", "حدث خطأ ما. يرجى المحاولة مرة أخرى.")
	message.SetString(lang, "err.csrf", "فشل التحقق الأمني. يرجى تحديث الصفحة والمحاولة مرة أخرى.")
}
