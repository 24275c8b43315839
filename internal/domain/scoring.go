package domain

import "math"

// Thresholds are the fixed cut-offs of the assessment. They are not clinically
// validated; DefaultThresholds reproduces the values the battery was authored with.
type Thresholds struct {
	SevereWeighted    float64
	HighWeighted      float64
	ModerateWeighted  float64
	CategoryAttention int
}

// DefaultThresholds is the threshold set used by Assess.
var DefaultThresholds = Thresholds{
	SevereWeighted:    60,
	HighWeighted:      40,
	ModerateWeighted:  25,
	CategoryAttention: 50,
}

// UrgentRule raises Message when the answer to QuestionID scores at least MinValue.
type UrgentRule struct {
	QuestionID string
	MinValue   int
	Message    string
}

// DefaultUrgentRules are evaluated independently; several may fire at once.
var DefaultUrgentRules = []UrgentRule{
	{QuestionID: QuestionSelfHarmIdeation, MinValue: 2, Message: "Có ý tưởng tự làm hại bản thân - CẦN HỖ TRỢ NGAY LẬP TỨC"},
	{QuestionID: QuestionSubstanceUse, MinValue: 2, Message: "Có dấu hiệu lạm dụng chất gây nghiện ở mức đáng chú ý."},
	{QuestionID: QuestionAngerControl, MinValue: 2, Message: "Khó khăn trong kiểm soát cơn giận - có thể ảnh hưởng đến gia đình."},
	{QuestionID: QuestionLossOfControl, MinValue: 2, Message: "Cảm giác mất kiểm soát cuộc sống ở mức độ cao."},
}

var (
	crisisRecommendations = []string{
		"🚨 KHẨN CẤP: Do có những dấu hiệu đáng lo ngại, bạn nên liên hệ ngay với chuyên gia tâm lý hoặc đường dây nóng hỗ trợ tâm lý để được tư vấn và can thiệp kịp thời.",
		"📞 Đường dây nóng tham khảo: 1900 636 688 (24/7) hoặc cơ sở y tế gần nhất.",
	}

	tierRecommendations = map[RiskTier][]string{
		RiskTierSevere: {
			"⚠️ Mức độ nguy cơ RẤT CAO - Cần tìm kiếm sự can thiệp chuyên môn ngay lập tức. Đừng ngần ngại nói chuyện với bác sĩ tâm thần hoặc chuyên gia tâm lý học lâm sàng.",
			"👨‍👩‍👧‍👦 Chia sẻ với người thân trong gia đình về tình trạng của bạn để họ có thể hỗ trợ bạn trong quá trình này.",
		},
		RiskTierHigh: {
			"⚠️ Mức độ nguy cơ KHÁ CAO - Bạn nên tìm kiếm sự hỗ trợ chuyên nghiệp. Hãy cân nhắc tham khảo ý kiến bác sĩ gia đình hoặc một chuyên gia tâm lý.",
			"📚 Tìm hiểu thêm về các kỹ thuật quản lý căng thẳng và áp dụng chúng vào cuộc sống hàng ngày.",
		},
		RiskTierModerate: {
			"⚠️ Có một số dấu hiệu căng thẳng - Đây là lúc cần chú ý và thực hiện những điều chỉnh tích cực trong lối sống. Thực hành các kỹ thuật thư giãn như thiền, yoga, hoặc các bài tập hít thở sâu có thể hữu ích.",
			"💬 Chia sẻ cảm xúc và những khó khăn bạn đang gặp phải với người thân hoặc bạn bè tin tưởng.",
		},
		RiskTierLow: {
			"✅ Tình trạng tâm lý của bạn hiện tại tương đối ổn định. Hãy tiếp tục duy trì các thói quen tích cực và chăm sóc sức khỏe tinh thần của mình.",
		},
	}

	categoryRecommendations = map[string]string{
		"sleep":                "😴 Cải thiện giấc ngủ: Duy trì lịch ngủ đều đặn, tạo không gian ngủ thoải mái, tránh caffeine và thiết bị điện tử trước khi ngủ.",
		"irritability":         "😤 Kiểm soát cáu kỉnh: Nhận diện yếu tố kích hoạt, thực hành kỹ thuật hít thở sâu, hoặc tạm thời rời khỏi tình huống căng thẳng.",
		"financial_anxiety":    "💰 Quản lý tài chính: Lập kế hoạch chi tiêu, tìm cách tăng thu nhập hoặc cắt giảm chi phí không cần thiết, tham khảo ý kiến chuyên gia tài chính nếu cần.",
		"emotional_expression": "💭 Khuyến khích biểu đạt cảm xúc: Viết nhật ký, nói chuyện cởi mở với người tin cậy, hoặc tham gia các hoạt động giúp giải tỏa cảm xúc.",
		"work_stress":          "💼 Cân bằng công việc-cuộc sống: Đặt ranh giới rõ ràng, ưu tiên công việc, dành thời gian nghỉ ngơi và tái tạo năng lượng.",
		"substance_use":        "🚫 Nếu đang dùng chất kích thích để đối phó stress, hãy tìm các giải pháp thay thế lành mạnh hơn và cân nhắc tìm sự hỗ trợ để giảm hoặc ngừng sử dụng.",
		"parental_burden":      "👶 Chia sẻ trách nhiệm chăm sóc con với bạn đời, tìm kiếm sự giúp đỡ từ gia đình hoặc bạn bè, dành thời gian nghỉ ngơi cho bản thân.",
	}

	closingRecommendations = []string{
		"💪 Duy trì hoạt động thể chất đều đặn, dù chỉ là đi bộ ngắn mỗi ngày.",
		"🤝 Xây dựng và duy trì các mối quan hệ xã hội tích cực. Kết nối với bạn bè, đồng nghiệp, hoặc tham gia các nhóm hỗ trợ.",
		"📖 Đọc thêm sách hoặc tài liệu về sức khỏe tâm thần và kỹ năng làm cha để trang bị thêm kiến thức.",
	}
)

// CrisisRecommendations returns the block that leads the recommendations
// whenever an urgent flag fires.
func CrisisRecommendations() []string {
	return append([]string(nil), crisisRecommendations...)
}

// Engine scores answer sets against a fixed question battery. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	questions  []Question
	categories []string
	thresholds Thresholds
	rules      []UrgentRule
}

// NewEngine binds a question battery to thresholds and urgent rules.
func NewEngine(questions []Question, thresholds Thresholds, rules []UrgentRule) *Engine {
	e := &Engine{
		questions:  cloneQuestions(questions),
		thresholds: thresholds,
		rules:      append([]UrgentRule(nil), rules...),
	}
	seen := make(map[string]bool)
	for _, q := range e.questions {
		if !seen[q.Category] {
			seen[q.Category] = true
			e.categories = append(e.categories, q.Category)
		}
	}
	return e
}

var defaultEngine = NewEngine(defaultQuestions, DefaultThresholds, DefaultUrgentRules)

// DefaultEngine returns the engine over the fixed battery.
func DefaultEngine() *Engine {
	return defaultEngine
}

// Assess scores answers with the default engine.
func Assess(answers AnswerSet) *AssessmentResult {
	return defaultEngine.Assess(answers)
}

// Questions returns a copy of the engine's battery.
func (e *Engine) Questions() []Question {
	return cloneQuestions(e.questions)
}

// Categories returns the category keys in battery order.
func (e *Engine) Categories() []string {
	return append([]string(nil), e.categories...)
}

// Thresholds returns the engine's cut-offs.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Assess computes the result of one submission. Unknown question ids and
// unknown option ids are ignored and contribute nothing. Unanswered questions
// still count towards the maxima.
func (e *Engine) Assess(answers AnswerSet) *AssessmentResult {
	result := &AssessmentResult{
		CategoryScores:  make(map[string]CategoryScore, len(e.categories)),
		UrgentFlags:     []string{},
		Recommendations: []string{},
	}
	values := make(map[string]int, len(answers))

	for _, q := range e.questions {
		weight := q.EffectiveWeight()
		result.MaxPossibleScore += MaxScorePerQuestion
		result.MaxPossibleWeightedScore += MaxScorePerQuestion * weight

		cs := result.CategoryScores[q.Category]
		cs.MaxScore += MaxScorePerQuestion

		if optionID, ok := answers[q.ID]; ok {
			if value, ok := q.OptionValue(optionID); ok {
				values[q.ID] = value
				result.TotalScore += value
				result.WeightedScore += float64(value) * weight
				cs.Score += value
			}
		}
		result.CategoryScores[q.Category] = cs
	}

	for category, cs := range result.CategoryScores {
		if cs.MaxScore > 0 {
			cs.Percentage = int(math.Round(float64(cs.Score) / float64(cs.MaxScore) * 100))
		}
		result.CategoryScores[category] = cs
	}

	result.UrgentFlags = e.urgentFlags(values)
	result.RiskTier = e.classify(result.WeightedScore, len(result.UrgentFlags) > 0)
	result.Recommendations = e.recommend(result)
	return result
}

// urgentFlags fires rules in battery order so the flag list is stable.
func (e *Engine) urgentFlags(values map[string]int) []string {
	flags := []string{}
	for _, q := range e.questions {
		value, answered := values[q.ID]
		if !answered {
			continue
		}
		for _, rule := range e.rules {
			if rule.QuestionID == q.ID && value >= rule.MinValue {
				flags = append(flags, rule.Message)
			}
		}
	}
	return flags
}

func (e *Engine) classify(weighted float64, urgent bool) RiskTier {
	switch {
	case urgent || weighted >= e.thresholds.SevereWeighted:
		return RiskTierSevere
	case weighted >= e.thresholds.HighWeighted:
		return RiskTierHigh
	case weighted >= e.thresholds.ModerateWeighted:
		return RiskTierModerate
	default:
		return RiskTierLow
	}
}

func (e *Engine) recommend(result *AssessmentResult) []string {
	var recs []string
	if result.HasUrgentFlags() {
		recs = append(recs, crisisRecommendations...)
	}
	recs = append(recs, tierRecommendations[result.RiskTier]...)
	for _, category := range e.categories {
		if result.CategoryScores[category].Percentage < e.thresholds.CategoryAttention {
			continue
		}
		if rec, ok := categoryRecommendations[category]; ok {
			recs = append(recs, rec)
		}
	}
	recs = append(recs, closingRecommendations...)
	return dedupe(recs)
}

// dedupe keeps the first occurrence of every entry.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
