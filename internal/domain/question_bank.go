package domain

import "strings"

// Question ids that carry an urgent safety flag.
const (
	QuestionSelfHarmIdeation = "q29"
	QuestionSubstanceUse     = "q12"
	QuestionAngerControl     = "q13"
	QuestionLossOfControl    = "q25"
)

// defaultQuestions is the 30-item battery adapted from the Edinburgh Postnatal
// Depression Scale for fathers. Option values are bounded by MaxScorePerQuestion.
var defaultQuestions = []Question{
	{
		ID:       "q1",
		Text:     "Bạn có thường xuyên cảm thấy khó ngủ hoặc ngủ không ngon giấc không?",
		Category: "sleep",
		Options: []Option{
			{ID: "q1o1", Text: "Rất thường xuyên", Value: 3},
			{ID: "q1o2", Text: "Thỉnh thoảng", Value: 2},
			{ID: "q1o3", Text: "Hiếm khi", Value: 1},
			{ID: "q1o4", Text: "Không bao giờ", Value: 0},
		},
		Weight: 1.2,
	},
	{
		ID:       "q2",
		Text:     "Bạn có dễ cảm thấy cáu kỉnh hoặc bực bội với những điều nhỏ nhặt không?",
		Category: "irritability",
		Options: []Option{
			{ID: "q2o1", Text: "Luôn luôn", Value: 3},
			{ID: "q2o2", Text: "Thường xuyên", Value: 2},
			{ID: "q2o3", Text: "Đôi khi", Value: 1},
			{ID: "q2o4", Text: "Không bao giờ", Value: 0},
		},
		Weight: 1.5,
	},
	{
		ID:       "q3",
		Text:     "Bạn có cảm thấy mệt mỏi, thiếu năng lượng ngay cả khi đã nghỉ ngơi đủ không?",
		Category: "fatigue",
		Options: []Option{
			{ID: "q3o1", Text: "Đúng vậy, rất thường xuyên", Value: 3},
			{ID: "q3o2", Text: "Có, nhưng không thường xuyên lắm", Value: 2},
			{ID: "q3o3", Text: "Hiếm khi", Value: 1},
			{ID: "q3o4", Text: "Không, tôi luôn tràn đầy năng lượng", Value: 0},
		},
		Weight: 1.1,
	},
	{
		ID:       "q4",
		Text:     "Bạn có gặp khó khăn trong việc tập trung vào công việc hoặc các hoạt động hàng ngày không?",
		Category: "concentration",
		Options: []Option{
			{ID: "q4o1", Text: "Rất khó khăn", Value: 3},
			{ID: "q4o2", Text: "Thỉnh thoảng gặp khó khăn", Value: 2},
			{ID: "q4o3", Text: "Ít khi", Value: 1},
			{ID: "q4o4", Text: "Hoàn toàn không", Value: 0},
		},
		Weight: 1.3,
	},
	{
		ID:       "q5",
		Text:     "Bạn có cảm thấy bi quan hoặc mất hứng thú với những điều từng làm bạn vui vẻ không?",
		Category: "anhedonia",
		Options: []Option{
			{ID: "q5o1", Text: "Thường xuyên cảm thấy vậy", Value: 3},
			{ID: "q5o2", Text: "Đôi khi", Value: 2},
			{ID: "q5o3", Text: "Rất hiếm", Value: 1},
			{ID: "q5o4", Text: "Không bao giờ", Value: 0},
		},
		Weight: 1.4,
	},
	{
		ID:       "q6",
		Text:     "Bạn có cảm thấy áp lực khi phải đảm nhận vai trò của một người cha/chồng không?",
		Category: "role_pressure",
		Options: []Option{
			{ID: "q6o1", Text: "Rất có áp lực", Value: 3},
			{ID: "q6o2", Text: "Có một chút áp lực", Value: 2},
			{ID: "q6o3", Text: "Ít áp lực", Value: 1},
			{ID: "q6o4", Text: "Không có áp lực gì", Value: 0},
		},
		Weight: 1.3,
	},
	{
		ID:       "q7",
		Text:     "Bạn có thường xuyên cảm thấy lo lắng về tương lai tài chính của gia đình không?",
		Category: "financial_anxiety",
		Options: []Option{
			{ID: "q7o1", Text: "Rất lo lắng", Value: 3},
			{ID: "q7o2", Text: "Khá lo lắng", Value: 2},
			{ID: "q7o3", Text: "Ít lo lắng", Value: 1},
			{ID: "q7o4", Text: "Không lo lắng", Value: 0},
		},
		Weight: 1.2,
	},
	{
		ID:       "q8",
		Text:     "Bạn có cảm thấy khó khăn trong việc bày tỏ cảm xúc của mình không?",
		Category: "emotional_expression",
		Options: []Option{
			{ID: "q8o1", Text: "Rất khó khăn", Value: 3},
			{ID: "q8o2", Text: "Khá khó khăn", Value: 2},
			{ID: "q8o3", Text: "Ít khó khăn", Value: 1},
			{ID: "q8o4", Text: "Dễ dàng bày tỏ", Value: 0},
		},
		Weight: 1.4,
	},
	{
		ID:       "q9",
		Text:     "Bạn có thường xuyên cảm thấy cô đơn ngay cả khi có người xung quanh không?",
		Category: "loneliness",
		Options: []Option{
			{ID: "q9o1", Text: "Rất thường xuyên", Value: 3},
			{ID: "q9o2", Text: "Thỉnh thoảng", Value: 2},
			{ID: "q9o3", Text: "Hiếm khi", Value: 1},
			{ID: "q9o4", Text: "Không bao giờ", Value: 0},
		},
		Weight: 1.3,
	},
	{
		ID:       "q10",
		Text:     "Bạn có xu hướng tránh né các cuộc trò chuyện về cảm xúc với bạn bè hoặc gia đình không?",
		Category: "avoidance",
		Options: []Option{
			{ID: "q10o1", Text: "Luôn tránh né", Value: 3},
			{ID: "q10o2", Text: "Thường tránh né", Value: 2},
			{ID: "q10o3", Text: "Đôi khi tránh né", Value: 1},
			{ID: "q10o4", Text: "Không tránh né", Value: 0},
		},
		Weight: 1.2,
	},
	{
		ID:       "q11",
		Text:     "Bạn có cảm thấy không đủ tốt trong vai trò làm cha/chồng không?",
		Category: "inadequacy",
		Options: []Option{
			{ID: "q11o1", Text: "Thường xuyên cảm thấy vậy", Value: 3},
			{ID: "q11o2", Text: "Đôi khi", Value: 2},
			{ID: "q11o3", Text: "Hiếm khi", Value: 1},
			{ID: "q11o4", Text: "Không bao giờ", Value: 0},
		},
		Weight: 1.5,
	},
	{
		ID:       "q12",
		Text:     "Bạn có thường xuyên sử dụng rượu bia hoặc các chất kích thích để giảm căng thẳng không?",
		Category: "substance_use",
		Options: []Option{
			{ID: "q12o1", Text: "Rất thường xuyên", Value: 3},
			{ID: "q12o2", Text: "Thỉnh thoảng", Value: 2},
			{ID: "q12o3", Text: "Hiếm khi", Value: 1},
			{ID: "q12o4", Text: "Không bao giờ", Value: 0},
		},
		Weight: 1.6,
	},
	{
		ID:       "q13",
		Text:     "Bạn có cảm thấy khó kiểm soát cơn giận của mình không?",
		Category: "anger_control",
		Options: []Option{
			{ID: "q13o1", Text: "Rất khó kiểm soát", Value: 3},
			{ID: "q13o2", Text: "Khá khó kiểm soát", Value: 2},
			{ID: "q13o3", Text: "Ít khó khăn", Value: 1},
			{ID: "q13o4", Text: "Dễ dàng kiểm soát", Value: 0},
		},
		Weight: 1.5,
	},
	{
		ID:       "q14",
		Text:     "Bạn có cảm thấy mình bị cô lập khỏi vợ/bạn đời không?",
		Category: "relationship_isolation",
		Options: []Option{
			{ID: "q14o1", Text: "Rất cô lập", Value: 3},
			{ID: "q14o2", Text: "Khá cô lập", Value: 2},
			{ID: "q14o3", Text: "Ít cô lập", Value: 1},
			{ID: "q14o4", Text: "Không cô lập", Value: 0},
		},
		Weight: 1.3,
	},
	{
		ID:       "q15",
		Text:     "Bạn có thường xuyên cảm thấy căng thẳng về công việc không?",
		Category: "work_stress",
		Options: []Option{
			{ID: "q15o1", Text: "Rất căng thẳng", Value: 3},
			{ID: "q15o2", Text: "Khá căng thẳng", Value: 2},
			{ID: "q15o3", Text: "Ít căng thẳng", Value: 1},
			{ID: "q15o4", Text: "Không căng thẳng", Value: 0},
		},
		Weight: 1.1,
	},
	{
		ID:       "q16",
		Text:     "Bạn có cảm thấy mình không thể chia sẻ lo lắng với ai không?",
		Category: "social_support",
		Options: []Option{
			{ID: "q16o1", Text: "Hoàn toàn không thể chia sẻ", Value: 3},
			{ID: "q16o2", Text: "Khó chia sẻ", Value: 2},
			{ID: "q16o3", Text: "Ít khó khăn trong chia sẻ", Value: 1},
			{ID: "q16o4", Text: "Dễ dàng chia sẻ", Value: 0},
		},
		Weight: 1.3,
	},
	{
		ID:       "q17",
		Text:     "Bạn có thường xuyên cảm thấy mệt mỏi về mặt tinh thần không?",
		Category: "mental_fatigue",
		Options: []Option{
			{ID: "q17o1", Text: "Rất thường xuyên", Value: 3},
			{ID: "q17o2", Text: "Thỉnh thoảng", Value: 2},
			{ID: "q17o3", Text: "Hiếm khi", Value: 1},
			{ID: "q17o4", Text: "Không bao giờ", Value: 0},
		},
		Weight: 1.2,
	},
	{
		ID:       "q18",
		Text:     "Bạn có cảm thấy việc chăm sóc em bé/con cái là một gánh nặng không?",
		Category: "parental_burden",
		Options: []Option{
			{ID: "q18o1", Text: "Thường xuyên cảm thấy vậy", Value: 3},
			{ID: "q18o2", Text: "Đôi khi", Value: 2},
			{ID: "q18o3", Text: "Hiếm khi", Value: 1},
			{ID: "q18o4", Text: "Không bao giờ", Value: 0},
		},
		Weight: 1.4,
	},
	{
		ID:       "q19",
		Text:     "Bạn có cảm thấy không có thời gian cho bản thân không?",
		Category: "personal_time",
		Options: []Option{
			{ID: "q19o1", Text: "Hoàn toàn không có thời gian", Value: 3},
			{ID: "q19o2", Text: "Rất ít thời gian", Value: 2},
			{ID: "q19o3", Text: "Có một chút thời gian", Value: 1},
			{ID: "q19o4", Text: "Có đủ thời gian cho bản thân", Value: 0},
		},
		Weight: 1.1,
	},
	{
		ID:       "q20",
		Text:     "Bạn có thường xuyên cảm thấy lo âu về sức khỏe của con/vợ không?",
		Category: "family_health_anxiety",
		Options: []Option{
			{ID: "q20o1", Text: "Rất lo âu", Value: 3},
			{ID: "q20o2", Text: "Khá lo âu", Value: 2},
			{ID: "q20o3", Text: "Ít lo âu", Value: 1},
			{ID: "q20o4", Text: "Không lo âu", Value: 0},
		},
		Weight: 1.2,
	},
	{
		ID:       "q21",
		Text:     "Bạn có cảm thấy mình không đủ mạnh mẽ để đối phó với các vấn đề không?",
		Category: "resilience",
		Options: []Option{
			{ID: "q21o1", Text: "Thường xuyên cảm thấy vậy", Value: 3},
			{ID: "q21o2", Text: "Đôi khi", Value: 2},
			{ID: "q21o3", Text: "Hiếm khi", Value: 1},
			{ID: "q21o4", Text: "Luôn cảm thấy đủ mạnh mẽ", Value: 0},
		},
		Weight: 1.4,
	},
	{
		ID:       "q22",
		Text:     "Bạn có thường xuyên cảm thấy buồn nôn hoặc mất cảm giác ngon miệng không?",
		Category: "physical_symptoms",
		Options: []Option{
			{ID: "q22o1", Text: "Rất thường xuyên", Value: 3},
			{ID: "q22o2", Text: "Thỉnh thoảng", Value: 2},
			{ID: "q22o3", Text: "Hiếm khi", Value: 1},
			{ID: "q22o4", Text: "Không bao giờ", Value: 0},
		},
		Weight: 1.1,
	},
	{
		ID:       "q23",
		Text:     "Bạn có cảm thấy việc tìm kiếm sự giúp đỡ là dấu hiệu của sự yếu đuối không?",
		Category: "help_seeking_stigma",
		Options: []Option{
			{ID: "q23o1", Text: "Hoàn toàn đồng ý", Value: 3},
			{ID: "q23o2", Text: "Phần nào đồng ý", Value: 2},
			{ID: "q23o3", Text: "Ít đồng ý", Value: 1},
			{ID: "q23o4", Text: "Hoàn toàn không đồng ý", Value: 0},
		},
		Weight: 1.3,
	},
	{
		ID:       "q24",
		Text:     "Bạn có thường xuyên cảm thấy đau đầu hoặc căng cơ không?",
		Category: "somatic_symptoms",
		Options: []Option{
			{ID: "q24o1", Text: "Rất thường xuyên", Value: 3},
			{ID: "q24o2", Text: "Thỉnh thoảng", Value: 2},
			{ID: "q24o3", Text: "Hiếm khi", Value: 1},
			{ID: "q24o4", Text: "Không bao giờ", Value: 0},
		},
	},
	{
		ID:       "q25",
		Text:     "Bạn có cảm thấy mình đang mất kiểm soát cuộc sống không?",
		Category: "control_loss",
		Options: []Option{
			{ID: "q25o1", Text: "Hoàn toàn mất kiểm soát", Value: 3},
			{ID: "q25o2", Text: "Phần lớn mất kiểm soát", Value: 2},
			{ID: "q25o3", Text: "Ít mất kiểm soát", Value: 1},
			{ID: "q25o4", Text: "Hoàn toàn kiểm soát được", Value: 0},
		},
		Weight: 1.5,
	},
	{
		ID:       "q26",
		Text:     "Bạn có thường xuyên có những suy nghĩ tiêu cực về bản thân không?",
		Category: "negative_self_talk",
		Options: []Option{
			{ID: "q26o1", Text: "Rất thường xuyên", Value: 3},
			{ID: "q26o2", Text: "Thỉnh thoảng", Value: 2},
			{ID: "q26o3", Text: "Hiếm khi", Value: 1},
			{ID: "q26o4", Text: "Không bao giờ", Value: 0},
		},
		Weight: 1.4,
	},
	{
		ID:       "q27",
		Text:     "Bạn có cảm thấy khó khăn trong việc tận hưởng thời gian bên gia đình không?",
		Category: "family_enjoyment",
		Options: []Option{
			{ID: "q27o1", Text: "Rất khó khăn", Value: 3},
			{ID: "q27o2", Text: "Khá khó khăn", Value: 2},
			{ID: "q27o3", Text: "Ít khó khăn", Value: 1},
			{ID: "q27o4", Text: "Dễ dàng tận hưởng", Value: 0},
		},
		Weight: 1.3,
	},
	{
		ID:       "q28",
		Text:     "Bạn có thường xuyên cảm thấy bồn chồn, không thể ngồi yên không?",
		Category: "restlessness",
		Options: []Option{
			{ID: "q28o1", Text: "Rất thường xuyên", Value: 3},
			{ID: "q28o2", Text: "Thỉnh thoảng", Value: 2},
			{ID: "q28o3", Text: "Hiếm khi", Value: 1},
			{ID: "q28o4", Text: "Không bao giờ", Value: 0},
		},
		Weight: 1.1,
	},
	{
		ID:       "q29",
		Text:     "Bạn có từng nghĩ rằng mọi người sẽ tốt hơn nếu không có bạn không?",
		Category: "suicidal_ideation",
		Options: []Option{
			{ID: "q29o1", Text: "Thường xuyên nghĩ vậy", Value: 3},
			{ID: "q29o2", Text: "Đôi khi nghĩ vậy", Value: 2},
			{ID: "q29o3", Text: "Hiếm khi nghĩ vậy", Value: 1},
			{ID: "q29o4", Text: "Không bao giờ nghĩ vậy", Value: 0},
		},
		Weight: 2.0,
	},
	{
		ID:       "q30",
		Text:     "Bạn có cảm thấy việc thể hiện tình cảm với con cái là điều khó khăn không?",
		Category: "parental_bonding",
		Options: []Option{
			{ID: "q30o1", Text: "Rất khó khăn", Value: 3},
			{ID: "q30o2", Text: "Khá khó khăn", Value: 2},
			{ID: "q30o3", Text: "Ít khó khăn", Value: 1},
			{ID: "q30o4", Text: "Dễ dàng thể hiện", Value: 0},
		},
		Weight: 1.4,
	},
}

// categoryNames holds the display name of every category in the battery.
var categoryNames = map[string]string{
	"sleep":                  "Chất lượng giấc ngủ",
	"irritability":           "Mức độ cáu kỉnh/bực bội",
	"fatigue":                "Mức độ mệt mỏi/thiếu năng lượng",
	"concentration":          "Khả năng tập trung",
	"anhedonia":              "Mất hứng thú/bi quan",
	"role_pressure":          "Áp lực từ vai trò cha/chồng",
	"financial_anxiety":      "Lo lắng về tài chính",
	"emotional_expression":   "Khả năng bày tỏ cảm xúc",
	"loneliness":             "Cảm giác cô đơn",
	"avoidance":              "Xu hướng tránh né giao tiếp cảm xúc",
	"inadequacy":             "Cảm giác không đủ tốt (vai trò cha/chồng)",
	"substance_use":          "Sử dụng chất kích thích để giảm căng thẳng",
	"anger_control":          "Khả năng kiểm soát cơn giận",
	"relationship_isolation": "Cảm giác bị cô lập trong mối quan hệ vợ chồng",
	"work_stress":            "Mức độ căng thẳng trong công việc",
	"social_support":         "Khả năng chia sẻ lo lắng/hỗ trợ xã hội",
	"mental_fatigue":         "Mệt mỏi về mặt tinh thần",
	"parental_burden":        "Cảm thấy việc chăm sóc con là gánh nặng",
	"personal_time":          "Thời gian dành cho bản thân",
	"family_health_anxiety":  "Lo lắng về sức khỏe của vợ/con",
	"resilience":             "Khả năng đối phó/mạnh mẽ tinh thần",
	"physical_symptoms":      "Triệu chứng thể chất (buồn nôn, ăn không ngon)",
	"help_seeking_stigma":    "Định kiến về việc tìm kiếm sự giúp đỡ",
	"somatic_symptoms":       "Triệu chứng cơ thể (đau đầu, căng cơ)",
	"control_loss":           "Cảm giác mất kiểm soát cuộc sống",
	"negative_self_talk":     "Tần suất suy nghĩ tiêu cực về bản thân",
	"family_enjoyment":       "Khả năng tận hưởng thời gian bên gia đình",
	"restlessness":           "Cảm giác bồn chồn, không yên",
	"suicidal_ideation":      "Ý nghĩ về việc mọi người sẽ tốt hơn nếu không có mình",
	"parental_bonding":       "Khó khăn trong việc thể hiện tình cảm với con",
}

// DefaultQuestions returns a copy of the fixed question battery.
func DefaultQuestions() []Question {
	return cloneQuestions(defaultQuestions)
}

// CategoryDisplayName returns the human-readable name of a category, falling
// back to the key with underscores replaced by spaces.
func CategoryDisplayName(category string) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return strings.ReplaceAll(category, "_", " ")
}

func cloneQuestions(src []Question) []Question {
	out := make([]Question, len(src))
	for i, q := range src {
		q.Options = append([]Option(nil), q.Options...)
		out[i] = q
	}
	return out
}
