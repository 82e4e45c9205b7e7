package profile

import "github.com/agentroute/agentroute/core"

// BuiltinProfiles returns the default agent identities. Keyword and exemplar
// sets are bilingual (Vietnamese/English) because that is the traffic the
// system was tuned on. Declaration order doubles as the deterministic
// tie-break order.
func BuiltinProfiles() []Profile {
	return []Profile{
		{
			Capability:  core.CapabilityMath,
			Description: "Chuyên giải toán, phương trình, tính toán, phân tích số liệu",
			Keywords: []string{
				"giải", "phương trình", "toán", "tính", "tính toán", "x^", "=", "công thức",
				"đại số", "hình học", "giải tích", "thống kê", "xác suất", "ma trận",
				"đạo hàm", "tích phân", "logarit", "sin", "cos", "tan", "căn bậc",
				"bất phương trình", "hệ phương trình", "đồ thị", "hàm số",
			},
			Exemplars: []string{
				"Giải phương trình x^2 - 5x + 6 = 0",
				"Tính đạo hàm của hàm f(x) = x^3 + 2x^2 - 5x + 1",
				"Tìm nghiệm của hệ phương trình tuyến tính",
				"Vẽ đồ thị hàm số y = sin(x)",
				"Tính xác suất của biến cố ngẫu nhiên",
			},
		},
		{
			Capability:  core.CapabilityResearch,
			Description: "Nghiên cứu, tìm kiếm thông tin, tin tức, phân tích dữ liệu",
			Keywords: []string{
				"nghiên cứu", "tìm hiểu", "thông tin", "tin tức", "news", "tìm kiếm",
				"phân tích", "báo cáo", "báo chí", "cập nhật", "mới nhất", "xu hướng",
				"thị trường", "kinh tế", "chính trị", "công nghệ", "khoa học", "y tế",
				"giáo dục", "môi trường", "năng lượng", "tài chính", "đầu tư",
			},
			Exemplars: []string{
				"Tin tức mới nhất về AI tuần này",
				"Phân tích xu hướng thị trường chứng khoán",
				"Tìm hiểu về công nghệ blockchain",
				"Báo cáo về tình hình kinh tế Việt Nam",
				"Nghiên cứu về biến đổi khí hậu",
			},
		},
		{
			Capability:  core.CapabilityOCR,
			Description: "Xử lý ảnh, OCR, nhận dạng văn bản, scan tài liệu",
			Keywords: []string{
				"ocr", "ảnh", "hình", "image", "scan", "nhận dạng", "văn bản",
				"tài liệu", "pdf", "jpg", "png", "bmp", "tiff", "chuyển đổi",
				"extract", "đọc", "chữ", "ký tự", "bảng", "biểu đồ",
			},
			Exemplars: []string{
				"Xử lý ảnh này bằng OCR",
				"Chuyển đổi tài liệu PDF thành text",
				"Nhận dạng văn bản trong hình ảnh",
				"Scan và đọc nội dung bảng biểu",
				"Extract text từ file ảnh",
			},
		},
		{
			Capability:  core.CapabilityCode,
			Description: "Lập trình, viết code, debug, thiết kế phần mềm",
			Keywords: []string{
				"code", "lập trình", "programming", "python", "javascript", "java",
				"golang", "function", "class", "variable", "debug", "bug", "sửa lỗi",
				"api", "thuật toán", "compile", "refactor", "unit test",
			},
			Exemplars: []string{
				"Làm sao viết function Python?",
				"Cách debug lỗi JavaScript",
				"Tạo API REST với Flask",
				"Viết thuật toán sắp xếp trong Go",
				"Refactor class này cho dễ đọc hơn",
			},
		},
		{
			Capability:  core.CapabilityGeneral,
			Description: "Trợ lý tổng quát, trả lời câu hỏi, tư vấn, hỗ trợ",
			Keywords: []string{
				"hỏi", "giúp", "tư vấn", "hướng dẫn", "cách", "làm sao", "tại sao",
				"là gì", "như thế nào", "khi nào", "ở đâu", "ai", "cái gì",
				"giải thích", "mô tả", "so sánh", "phân biệt", "ưu nhược điểm",
				"viết", "tạo", "xây dựng", "phát triển", "thiết kế",
			},
			Exemplars: []string{
				"Giải thích về machine learning",
				"So sánh iPhone và Samsung",
				"Hướng dẫn nấu phở",
				"Tư vấn chọn laptop",
				"Mô tả quy trình xin visa",
			},
		},
	}
}
