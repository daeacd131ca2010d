package marketing

// FallbackPlan is the deterministic plan served when the AI backend
// cannot produce one. Generic on purpose: the product promise is that
// requesting a plan always yields a plan.
func FallbackPlan(lang string) Plan {
	if lang == "en" {
		return Plan{
			Strategy:       "Start with a focused digital-first launch: validate messaging with a small audience, then scale the channels that convert.",
			TargetAudience: "Early adopters in your idea's core market segment, reached through the communities where they already spend time.",
			Channels:       []string{"Social media", "Content marketing", "Search engine optimization", "Email newsletter", "Partnerships"},
			Budget:         "Begin with a modest monthly budget and reallocate toward the best-performing channel every month.",
			Timeline:       "Month 1: brand and landing page. Months 2-3: content and community building. Months 4-6: paid acquisition on validated channels.",
			KPIs:           []string{"Website visits", "Sign-up conversion rate", "Customer acquisition cost", "Retention after 30 days"},
			ActionItems:    []string{"Define the core value proposition in one sentence", "Launch a landing page with a sign-up form", "Publish two pieces of content per week", "Interview ten potential customers"},
		}
	}
	return Plan{
		Strategy:       "ابدأ بإطلاق رقمي مركّز: اختبر رسالتك التسويقية مع جمهور صغير، ثم وسّع القنوات التي تحقق نتائج.",
		TargetAudience: "المتبنون الأوائل في الشريحة الأساسية لفكرتك، عبر المجتمعات التي يتواجدون فيها بالفعل.",
		Channels:       []string{"وسائل التواصل الاجتماعي", "التسويق بالمحتوى", "تحسين محركات البحث", "البريد الإلكتروني", "الشراكات"},
		Budget:         "ابدأ بميزانية شهرية متواضعة وأعد توزيعها شهرياً نحو القناة الأفضل أداءً.",
		Timeline:       "الشهر الأول: الهوية وصفحة الهبوط. الشهران الثاني والثالث: المحتوى وبناء المجتمع. من الرابع إلى السادس: الاستحواذ المدفوع عبر القنوات المجرّبة.",
		KPIs:           []string{"زيارات الموقع", "معدل التحويل إلى التسجيل", "تكلفة اكتساب العميل", "الاحتفاظ بالعملاء بعد 30 يوماً"},
		ActionItems:    []string{"صياغة القيمة الأساسية في جملة واحدة", "إطلاق صفحة هبوط مع نموذج تسجيل", "نشر محتوى مرتين أسبوعياً", "مقابلة عشرة عملاء محتملين"},
	}
}
