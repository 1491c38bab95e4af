package llm

// The two prompt templates below are a fixed contract: every section name
// and nested key in the example JSON must match what the persistence layer
// looks up. Change them only together with internal/analysis.

const referralContentCap = 15000

func buildCRMPrompt(content string) string {
	return `این گزارش CRM است. تحلیل کن و **فقط JSON برگردون** (بدون توضیح).

**ستون‌ها:**
ردیف | اشتراک | نام | نام موسسه | تلفن | کاربر | ثبت | نوع | وضعیت

**متن:**
` + content + `

**برای خلاصه:**
- بگو چند تماس انجام شده (موفق، بی‌پاسخ)
- چه کارشناسانی فعال بودن
- برترین مشتریان کدومن
- محصولات اصلی چی بودن
- نقاط قوت و ضعف

**مثال خلاصه:**
"گزارش شامل 150 تماس: 90 موفق (60%) و 30 بی‌پاسخ. کارشناس 'پایان' با 40 تماس برترین بود. مشتریان کلیدی: اداره کل دادگستری و تابلوفرمان پار. محصولات: APC، UPS، دوربین. نقاط قوت: پیگیری منظم و خدمات تعمیراتی. نقاط ضعف: تماس‌های بی‌پاسخ."

{
  "فیلدهای_عددی": {
    "امتیاز_کل": 7,
    "امتیاز_برقراری_ارتباط": 7,
    "امتیاز_نیازسنجی": 6,
    "امتیاز_ارزش_فروشی": 5,
    "امتیاز_مدیریت_اعتراض": 5,
    "امتیاز_شفافیت_قیمت": 6,
    "امتیاز_بستن_فروش": 5,
    "امتیاز_پیگیری": 8,
    "امتیاز_همسویی_احساسی": 6,
    "امتیاز_شنوندگی": 7,
    "کیفیت_لید_درصد": 70,
    "تعداد_سوالات_باز": 0,
    "تعداد_اعتراض": 5,
    "درصد_پاسخ_موفق_به_اعتراض": 60,
    "تعداد_تلاش_برای_بستن": 10,
    "امتیاز_احساس_مشتری": 6,
    "آمادگی_بستن_درصد": 50,
    "چگالی_اطلاعات_فنی_فروشنده_درصد": 75,
    "چگالی_اطلاعات_فنی_مشتری_درصد": 60,
    "disc_d": 6,
    "disc_i": 7,
    "disc_s": 6,
    "disc_c": 5,
    "حساسیت_قیمت_مشتری_درصد": 65,
    "حساسیت_ریسک_مشتری_درصد": 55,
    "حساسیت_زمان_مشتری_درصد": 60,
    "تعداد_بله_پله_ای": 3
  },
  "فیلدهای_متنی": {
    "نام_فروشنده": "پایان، کارگر، حسینی",
    "کد_فروشنده": "",
    "نام_مشتری": "اداره کل دادگستری مشهد، تابلوفرمان پار",
    "مدت_تماس": "",
    "نوع_تماس_جهت": "خروجی",
    "نوع_تماس_مرحله": "پشتیبانی و فروش",
    "نوع_تماس_گرمی": "متوسط",
    "نوع_تماس_ماهیت": "پشتیبانی و فروش",
    "محصول": "APC، UPS، دوربین، سانترال",
    "سطح_فروشنده": "متوسط",
    "disc_تیپ": "I",
    "disc_شواهد": ["تعامل زیاد", "پیگیری مستمر"],
    "disc_راهنما": "تعامل مستمر و پیگیری",
    "ترجیح_کانال": "تلفن",
    "سطح_آگاهی_مشتری": "متوسط",
    "نسبت_زمان_صحبت_مشتری_به_فروشنده": "40:60",
    "نسبت_زمان_صحبت_فروشنده_به_مشتری": "60:40",
    "خلاصه": "خلاصه کامل مطابق مثال - با اعداد و جزئیات",
    "تحلیل_شخصیت_مشتری": "مشتریان سازمانی و دولتی با نیاز به پشتیبانی مستمر",
    "ارزیابی_عملکرد_فردی_فروشنده": "تیم فعال با پیگیری منظم",
    "تشخیص_آمادگی": "آمادگی متوسط برای خرید",
    "اقدام_بعدی": "پیگیری تماس‌های بی‌پاسخ و بستن فروش‌ها"
  },
  "دلایل_کاهش_امتیازها": {
    "برقراری_ارتباط": ["تماس‌های بی‌پاسخ"],
    "نیازسنجی": ["عدم شناسایی کامل نیاز"],
    "ارزش_فروشی": ["عدم توضیح کامل ارزش"],
    "مدیریت_اعتراض": ["برخی اعتراضات بدون پاسخ"],
    "شفافیت_قیمت": ["تاخیر در ارسال قیمت"],
    "بستن_فروش": ["عدم بستن فروش‌های آماده"],
    "پیگیری": ["ختم زودهنگام"],
    "همسویی_احساسی": [],
    "شنوندگی": []
  },
  "دلایل_کسب_امتیازها": {
    "برقراری_ارتباط": ["تماس‌های منظم"],
    "نیازسنجی": ["شناسایی نیازهای فنی"],
    "ارزش_فروشی": ["ارائه محصولات متنوع"],
    "مدیریت_اعتراض": ["رسیدگی به مشکلات"],
    "شفافیت_قیمت": ["ارائه قیمت"],
    "بستن_فروش": ["فاکتورهای موفق"],
    "پیگیری": ["Reminder منظم"],
    "همسویی_احساسی": ["رفتار محترمانه"],
    "شنوندگی": ["توجه به نیازها"]
  },
  "لیست_ها": {
    "کلمات_مثبت": ["تایید", "موفق", "انجام شد", "قبول"],
    "کلمات_منفی": ["بی‌پاسخ", "خاتمه", "مشکل", "تاخیر"],
    "ریسک_ها": ["از دست دادن مشتری", "تاخیر در پاسخ"],
    "نقاط_قوت": ["پیگیری منظم", "تنوع خدمات", "تعمیرات فعال"],
    "نقاط_ضعف": ["تماس‌های بی‌پاسخ", "ختم زودهنگام"],
    "اعتراضات": ["تاخیر در پاسخ", "مشکل در تحویل"],
    "تکنیکها": ["Reminder", "ارجاع به حسابداری", "پیگیری تلفنی"],
    "پارامترهای_رعایت_نشده": ["زمان پاسخ"],
    "اشتباهات_رایج": ["عدم پاسخ به موقع"]
  },
  "آمار": {
    "تعداد_کل_تماس_ها": 150,
    "تماس_های_موفق": 90,
    "تماس_های_بی_پاسخ": 30,
    "تماس_های_ارجاعی": 20,
    "کاربران_فعال": [
      {"نام": "پایان", "تعداد_تماس": 40, "یادداشت_عملکرد": "برترین کارشناس"},
      {"نام": "حسینی", "تعداد_تماس": 20, "یادداشت_عملکرد": "فعال"}
    ],
    "مشتریان_پرتماس": [
      {"نام": "اداره کل دادگستری مشهد", "تعداد_تماس": 12, "کیفیت_تعامل": "عالی"},
      {"نام": "تابلوفرمان پار", "تعداد_تماس": 8, "کیفیت_تعامل": "خوب"}
    ],
    "انواع_تماس": {
      "پایان": 50,
      "Reminder": 40,
      "Erja": 20,
      "تعمیرات": 30,
      "Repair": 10
    }
  },
  "بهترین_ها": {
    "بهترین_فروشنده": {
      "نام": "پایان",
      "دلیل": "40 تماس با نرخ موفقیت بالا"
    },
    "بهترین_مشتری": {
      "نام": "اداره کل دادگستری مشهد",
      "دلیل": "12 تماس با کیفیت عالی"
    }
  }
}`
}

func buildReferralPrompt(content string) string {
	if runes := []rune(content); len(runes) > referralContentCap {
		content = string(runes[:referralContentCap])
	}

	return `You are a workflow analyst. Analyze this referral/excel data and return ONLY JSON with the analysis.

**Input Data:**
` + content + `

**COMPLETE ANALYSIS QUESTIONS:**

1. STATUS ANALYSIS (وضعیت ارجاعیات):
   - What percentage of referrals are in "بررسی نشده" status?
   - Which status has the highest frequency?
   - Percentage of "اتمام کار" referrals vs total?
   - Which receiver has most "درحال پیگیری" referrals?
   - What is the distribution of all statuses?
   - How many referrals are in "قبول ارجاع" status?

2. SUBJECT ANALYSIS (تحلیل موضوعی):
   - Most frequent subject/topic?
   - Which subject has most "بررسی نشده"?
   - Average response time per subject?
   - List all unique subjects with counts

3. SENDER/RECEIVER ANALYSIS:
   - Top sender by volume?
   - Top receiver by volume?
   - Most common sender-receiver pair?
   - Which receiver has most pending?

4. INSTITUTION ANALYSIS:
   - Top institutions by referral count?
   - Which institution has highest completion rate?
   - Correlation between subscription and completion?

5. DESCRIPTION ANALYSIS:
   - Percentage with descriptions?
   - Average description length?
   - Top keywords in descriptions (like باتری, فاکتور, etc.)?

6. COMPREHENSIVE INSIGHTS:
   - What factors lead to "اتمام کار"?
   - What are the top 3 bottlenecks?
   - What are the top 3 strengths?
   - Overall health score of the workflow (0-100)?
   - Summary in Persian (minimum 3 sentences)
   - Top 5 recommendations in Persian (as an array)

Return JSON with this exact structure:
{
  "status_analysis": {
    "percent_pending": 25.5,
    "most_frequent_status": "بررسی نشده",
    "frequent_status_count": 7,
    "avg_days_pending": 2.3,
    "worst_sender_pending": {"unit": "تعمیرات", "count": 3},
    "percent_completed": 45.8,
    "receiver_with_most_in_progress": {"receiver": "امور خدمات", "count": 2},
    "status_distribution": {
      "بررسی نشده": 7,
      "رویت شده": 3,
      "درحال پیگیری": 2,
      "اتمام کار": 12,
      "قبول ارجاع": 1
    },
    "status_with_lowest_frequency": "قبول ارجاع",
    "lowest_frequency_count": 1
  },
  "subject_analysis": {
    "most_frequent_subject": "فاکتور شود و تحویل",
    "subject_frequency": 6,
    "second_most_frequent": "خرید باتری",
    "second_frequency": 3,
    "unique_subjects": [
      {"subject": "فاکتور شود و تحویل", "count": 6},
      {"subject": "خرید باتری", "count": 3}
    ]
  },
  "sender_receiver_analysis": {
    "top_senders": [
      {"sender": "تعمیرات", "count": 7, "completion_rate": 57.1}
    ],
    "top_receivers": [
      {"receiver": "امور خدمات", "count": 8, "pending": 5}
    ],
    "common_pairs": [
      {"from": "تعمیرات", "to": "امور خدمات", "count": 3}
    ]
  },
  "institution_analysis": {
    "top_institutions": [
      {"name": "سیمان بجنورد", "count": 3, "subs": 28, "completion_rate": 100}
    ],
    "subscription_correlation": 0.3
  },
  "description_analysis": {
    "percent_with_description": 65.4,
    "avg_description_length": 45.2,
    "top_keywords": [
      {"word": "باتری", "count": 6, "completion_rate": 50.0}
    ]
  },
  "comprehensive_insights": {
    "completion_factors": ["توضیحات کامل", "پیگیری منظم"],
    "top_bottlenecks": [
      {"bottleneck": "واحد امور خدمات", "pending_count": 5, "impact": "بالا"}
    ],
    "top_strengths": ["پیگیری منظم", "سرعت عمل در فاکتور"],
    "workflow_health_score": 68.5,
    "summary_fa": "از مجموع ۲۷ ارجاع، ۱۲ مورد به اتمام رسیده و ۷ مورد بررسی نشده است.",
    "recommendations_fa": [
      "پیگیری فوری ارجاعات معطل‌مانده",
      "ثبت توضیحات کامل‌تر برای ارجاعات"
    ]
  }
}`
}
