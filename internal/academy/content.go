package academy

// Master is one listed instructor on the portal.
type Master struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Bio       string `json:"bio"`
	Students  int    `json:"students"`
}

// Workshop is one listed course.
type Workshop struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	MasterID int    `json:"master_id"`
	Duration string `json:"duration"`
	Level    string `json:"level"`
	Capacity int    `json:"capacity"`
}

// Assessment is one listed quiz.
type Assessment struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Questions int    `json:"questions"`
	Minutes   int    `json:"minutes"`
	PassScore int    `json:"pass_score"`
}

// Portal content is fixed; there is no backing table for it yet.

func Masters() []Master {
	return []Master{
		{ID: 1, Name: "مهندس رضایی", Specialty: "فروش سازمانی", Bio: "۱۵ سال سابقه فروش تجهیزات برق اضطراری", Students: 120},
		{ID: 2, Name: "خانم احمدی", Specialty: "مذاکره و بستن فروش", Bio: "مدرس دوره‌های مذاکره تلفنی", Students: 85},
		{ID: 3, Name: "مهندس کریمی", Specialty: "فنی یو پی اس", Bio: "متخصص طراحی سیستم‌های برق اضطراری", Students: 64},
	}
}

func Workshops() []Workshop {
	return []Workshop{
		{ID: 1, Title: "اصول فروش تلفنی", MasterID: 2, Duration: "۸ ساعت", Level: "مقدماتی", Capacity: 30},
		{ID: 2, Title: "نیازسنجی فنی مشتری", MasterID: 3, Duration: "۱۲ ساعت", Level: "متوسط", Capacity: 20},
		{ID: 3, Title: "مدیریت اعتراض مشتری", MasterID: 2, Duration: "۶ ساعت", Level: "متوسط", Capacity: 25},
		{ID: 4, Title: "فروش به سازمان‌های دولتی", MasterID: 1, Duration: "۱۰ ساعت", Level: "پیشرفته", Capacity: 15},
	}
}

func Assessments() []Assessment {
	return []Assessment{
		{ID: 1, Title: "آزمون شناخت محصول", Questions: 20, Minutes: 30, PassScore: 70},
		{ID: 2, Title: "آزمون مهارت مذاکره", Questions: 15, Minutes: 25, PassScore: 60},
		{ID: 3, Title: "آزمون DISC", Questions: 28, Minutes: 20, PassScore: 0},
	}
}
