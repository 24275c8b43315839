package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ReportDateLayout renders dates the way Vietnamese readers expect them.
const ReportDateLayout = "2/1/2006"

// RiskTierLabel returns the display label of a tier.
func RiskTierLabel(tier RiskTier) string {
	switch tier {
	case RiskTierLow:
		return "THẤP ✅"
	case RiskTierModerate:
		return "TRUNG BÌNH ⚠️"
	case RiskTierHigh:
		return "CAO ⚠️⚠️"
	case RiskTierSevere:
		return "RẤT CAO - CẦN CAN THIỆP GẤP 🚨"
	default:
		return "KHÔNG XÁC ĐỊNH"
	}
}

// RiskTierDescription returns the explanatory paragraph of a tier.
func RiskTierDescription(tier RiskTier) string {
	switch tier {
	case RiskTierLow:
		return "Kết quả cho thấy mức độ căng thẳng và các vấn đề tâm lý của bạn hiện đang ở mức thấp. Đây là một dấu hiệu tốt. Hãy tiếp tục duy trì những thói quen lành mạnh và chăm sóc bản thân."
	case RiskTierModerate:
		return "Kết quả cho thấy bạn có thể đang trải qua một số áp lực hoặc căng thẳng ở mức độ vừa phải. Đây là lúc cần chú ý hơn đến sức khỏe tinh thần và cân nhắc áp dụng các biện pháp thư giãn, tự chăm sóc."
	case RiskTierHigh:
		return "Kết quả cho thấy mức độ căng thẳng hoặc các vấn đề tâm lý của bạn đang ở mức cao. Bạn nên xem xét việc chia sẻ với người tin cậy và tìm kiếm sự tư vấn từ chuyên gia để có những hỗ trợ phù hợp."
	case RiskTierSevere:
		return "Kết quả cho thấy bạn đang ở mức độ căng thẳng hoặc các vấn đề tâm lý nghiêm trọng. Rất quan trọng để bạn tìm kiếm sự giúp đỡ chuyên nghiệp ngay lập tức. Đừng ngần ngại liên hệ bác sĩ hoặc chuyên gia tâm lý."
	default:
		return "Không thể xác định mức độ nguy cơ dựa trên thông tin hiện có."
	}
}

// Greeting is the personalised welcome shown on the home screen.
func Greeting(name string) string {
	return fmt.Sprintf("DadMind rất vui khi gặp lại bạn, %s! Hôm nay bạn muốn chia sẻ điều gì cùng DadMind?", name)
}

// RankedCategory is a category whose percentage met the attention threshold.
type RankedCategory struct {
	Key        string
	Name       string
	Percentage int
}

// TopCategories returns at most limit categories at or above minPercentage,
// highest percentage first. Ties are broken by category key.
func TopCategories(result *AssessmentResult, minPercentage, limit int) []RankedCategory {
	ranked := make([]RankedCategory, 0, len(result.CategoryScores))
	for key, cs := range result.CategoryScores {
		if cs.Percentage < minPercentage {
			continue
		}
		ranked = append(ranked, RankedCategory{Key: key, Name: CategoryDisplayName(key), Percentage: cs.Percentage})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Percentage != ranked[j].Percentage {
			return ranked[i].Percentage > ranked[j].Percentage
		}
		return ranked[i].Key < ranked[j].Key
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// DetailedReport renders the plain-text report of a result.
func (e *Engine) DetailedReport(result *AssessmentResult, date time.Time) string {
	var b strings.Builder

	b.WriteString("\n📋 BÁO CÁO ĐÁNH GIÁ TÂM LÝ NAM GIỚI DADMIND\n")
	fmt.Fprintf(&b, "Ngày đánh giá: %s\n\n", date.Format(ReportDateLayout))
	b.WriteString("📊 KẾT QUẢ TỔNG QUAN:\n")
	fmt.Fprintf(&b, "• Tổng điểm (Raw Score): %d / %d\n", result.TotalScore, result.MaxPossibleScore)
	fmt.Fprintf(&b, "• Điểm có trọng số (Weighted Score): %.1f / %.1f\n", result.WeightedScore, result.MaxPossibleWeightedScore)
	fmt.Fprintf(&b, "• Mức độ nguy cơ: %s - %s\n\n", RiskTierLabel(result.RiskTier), RiskTierDescription(result.RiskTier))
	b.WriteString("📈 PHÂN TÍCH CHI TIẾT THEO TỪNG KHÍA CẠNH:\n")

	for _, category := range e.orderedCategories(result) {
		cs := result.CategoryScores[category]
		indicator := "✅ (Tốt)"
		if cs.Percentage >= e.thresholds.CategoryAttention {
			indicator = "⚠️ (Cần chú ý)"
		}
		fmt.Fprintf(&b, "• %s: %d/%d điểm (%d%%) %s\n", CategoryDisplayName(category), cs.Score, cs.MaxScore, cs.Percentage, indicator)
	}

	if result.HasUrgentFlags() {
		b.WriteString("\n🚨 CÁC DẤU HIỆU CẤP THIẾT CẦN LƯU Ý NGAY:\n")
		for _, flag := range result.UrgentFlags {
			fmt.Fprintf(&b, "• %s\n", flag)
		}
	}

	b.WriteString("\n💡 CÁC GỢI Ý VÀ KHUYẾN NGHỊ CHUNG:\n")
	if len(result.Recommendations) == 0 {
		b.WriteString("• Hiện tại không có khuyến nghị cụ thể nào dựa trên kết quả. Hãy tiếp tục duy trì lối sống lành mạnh.\n")
	}
	for _, rec := range result.Recommendations {
		fmt.Fprintf(&b, "• %s\n", rec)
	}

	b.WriteString(`
📞 THÔNG TIN HỖ TRỢ KHI CẦN THIẾT:
• Đường dây nóng hỗ trợ tâm lý (ví dụ): 1900 1234 (Nếu có)
• Chuyên gia tâm lý: Tìm kiếm tại các bệnh viện hoặc phòng khám uy tín.
• DadMind cũng có thể kết nối bạn với chuyên gia nếu bạn muốn.

⚠️ LƯU Ý QUAN TRỌNG:
Báo cáo này dựa trên câu trả lời tự đánh giá của bạn và chỉ mang tính chất sàng lọc, tham khảo ban đầu. Nó không thay thế cho việc chẩn đoán y khoa hoặc tư vấn chuyên nghiệp từ các bác sĩ, chuyên gia tâm lý. Nếu bạn cảm thấy lo lắng hoặc có bất kỳ vấn đề nào về sức khỏe tâm thần, vui lòng tìm kiếm sự giúp đỡ từ các chuyên gia y tế.

Bài test được xây dựng dựa trên các nguyên tắc của thang đánh giá trầm cảm sau sinh Edinburgh (EPDS) và được điều chỉnh cho phù hợp với đối tượng nam giới và các khía cạnh tâm lý chung của người làm cha.
`)
	return b.String()
}

// DetailedReport renders a report with the default engine.
func DetailedReport(result *AssessmentResult, date time.Time) string {
	return defaultEngine.DetailedReport(result, date)
}

// orderedCategories lists the battery categories first, then any others sorted.
func (e *Engine) orderedCategories(result *AssessmentResult) []string {
	out := make([]string, 0, len(result.CategoryScores))
	known := make(map[string]bool, len(e.categories))
	for _, c := range e.categories {
		known[c] = true
		if _, ok := result.CategoryScores[c]; ok {
			out = append(out, c)
		}
	}
	var extra []string
	for c := range result.CategoryScores {
		if !known[c] {
			extra = append(extra, c)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// ActionPlan builds the personalised step list for a result.
func ActionPlan(result *AssessmentResult) []string {
	plan := []string{"📝 KẾ HOẠCH HÀNH ĐỘNG CÁ NHÂN HÓA DADMIND:"}

	if result.HasUrgentFlags() {
		plan = append(plan, "\n🆘 HÀNH ĐỘNG ƯU TIÊN CAO NHẤT (NGAY LẬP TỨC):")
		for _, flag := range result.UrgentFlags {
			plan = append(plan, fmt.Sprintf("• %s - Tìm kiếm sự hỗ trợ chuyên nghiệp ngay!", flag))
		}
		plan = append(plan,
			"• Chia sẻ ngay với người thân hoặc bạn bè mà bạn tin tưởng nhất về những gì bạn đang trải qua.",
			"• Đảm bảo bạn không ở một mình nếu cảm thấy quá khó khăn.",
		)
	}

	elevated := result.RiskTier == RiskTierSevere || result.RiskTier == RiskTierHigh

	plan = append(plan, "\n🗓️ TRONG 1-3 NGÀY TỚI:")
	if elevated {
		plan = append(plan,
			"• Đặt lịch hẹn với bác sĩ gia đình hoặc chuyên gia tâm lý để thảo luận chi tiết về kết quả này.",
			"• Viết ra những suy nghĩ, cảm xúc chính đang làm bạn phiền lòng.",
		)
	}
	plan = append(plan,
		"• Dành ít nhất 30 phút mỗi ngày cho một hoạt động bạn yêu thích hoặc giúp bạn thư giãn (nghe nhạc, đọc sách, đi dạo).",
		"• Xem xét lại lịch trình hàng ngày, cố gắng giảm bớt những việc không quá cấp thiết để giảm tải áp lực.",
	)

	plan = append(plan, "\n📅 TRONG TUẦN TỚI:")
	if elevated || result.RiskTier == RiskTierModerate {
		plan = append(plan,
			"• Bắt đầu thực hành một kỹ thuật thư giãn đơn giản (ví dụ: hít thở sâu 5 phút mỗi ngày, thiền ngắn).",
			"• Tìm hiểu về các nhóm hỗ trợ dành cho các ông bố hoặc các vấn đề bạn đang gặp phải (nếu có).",
		)
	}
	plan = append(plan,
		"• Cố gắng ngủ đủ 7-8 tiếng mỗi đêm. Cải thiện vệ sinh giấc ngủ nếu cần.",
		"• Tăng cường hoạt động thể chất (ví dụ: đi bộ nhanh, chạy bộ, bơi lội) ít nhất 3 lần/tuần.",
		"• Kết nối lại với một người bạn hoặc người thân mà bạn đã lâu không liên lạc.",
	)

	plan = append(plan,
		"\n🎯 MỤC TIÊU DÀI HẠN (1-3 THÁNG):",
		"• Xây dựng một thói quen tự chăm sóc bản thân bền vững (thể chất, tinh thần, xã hội).",
		"• Phát triển các kỹ năng đối phó với căng thẳng hiệu quả hơn.",
		"• Cải thiện kỹ năng giao tiếp trong gia đình và các mối quan hệ quan trọng.",
		"• Đánh giá lại tình trạng của bạn bằng bài test này sau khoảng 1 tháng để theo dõi tiến triển.",
		"• Nếu bạn đang làm việc với chuyên gia, hãy tuân thủ kế hoạch điều trị và thường xuyên trao đổi về tiến trình của mình.",
		"\n💡 LỜI NHẮN TỪ DADMIND: Hành trình làm cha có nhiều thử thách, nhưng bạn không đơn độc. Việc nhận diện vấn đề và tìm kiếm giải pháp là bước đầu tiên rất quan trọng. Hãy kiên nhẫn với bản thân và từng bước thực hiện những thay đổi tích cực.",
	)
	return plan
}
