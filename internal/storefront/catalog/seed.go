package catalog

import "github.com/ergolife/storefront/internal/storefront/model"

// SeedProducts returns the built-in catalogue shown when the API is
// unreachable. Each call returns a fresh copy.
func SeedProducts() []model.Product {
	return []model.Product{
		{
			ID:          "1",
			Name:        "Ghế Công Thái Học ErgoMaster Pro",
			Category:    model.CategoryChair,
			Price:       8500000,
			Description: "Thiết kế chuẩn công thái học, hỗ trợ cột sống tối đa với đệm thắt lưng 3D điều chỉnh linh hoạt.",
			Image:       "https://picsum.photos/seed/ergochair1/600/600",
			Stock:       15,
			Rating:      4.8,
			Reviews: []model.Review{
				{UserID: "u1", UserName: "Nguyễn Văn A", Rating: 5, Comment: "Ghế rất êm, ngồi làm việc cả ngày không mỏi.", Date: "2023-10-15"},
			},
		},
		{
			ID:          "2",
			Name:        "Bàn Đứng Thông Minh FlexiDesk V2",
			Category:    model.CategoryDesk,
			Price:       12500000,
			Description: "Điều chỉnh độ cao bằng điện, có bộ nhớ 4 vị trí, chân thép chắc chắn, tải trọng lên đến 120kg.",
			Image:       "https://picsum.photos/seed/ergodesk1/600/600",
			Stock:       8,
			Rating:      4.9,
			Reviews:     []model.Review{},
		},
		{
			ID:          "3",
			Name:        "Giá Treo Màn Hình Dual Arm Pro",
			Category:    model.CategoryAccessory,
			Price:       1850000,
			Description: "Nâng hạ linh hoạt cho 2 màn hình, giúp giải phóng không gian bàn làm việc và bảo vệ cổ vai gáy.",
			Image:       "https://picsum.photos/seed/ergomonitor/600/600",
			Stock:       25,
			Rating:      4.5,
			Reviews:     []model.Review{},
		},
		{
			ID:          "4",
			Name:        "Bàn Phím Cơ Công Thái Học Split-K",
			Category:    model.CategoryAccessory,
			Price:       3200000,
			Description: "Thiết kế tách rời giúp cổ tay ở tư thế tự nhiên nhất, giảm thiểu hội chứng ống cổ tay.",
			Image:       "https://picsum.photos/seed/ergokeyboard/600/600",
			Stock:       10,
			Rating:      4.7,
			Reviews:     []model.Review{},
		},
		{
			ID:          "5",
			Name:        "Chuột Vertical Ergo Mouse",
			Category:    model.CategoryAccessory,
			Price:       950000,
			Description: "Thiết kế dạng đứng 57 độ, giúp giảm áp lực cổ tay khi sử dụng thời gian dài.",
			Image:       "https://picsum.photos/seed/ergomouse/600/600",
			Stock:       30,
			Rating:      4.6,
			Reviews:     []model.Review{},
		},
	}
}
