package dto

// ── 排班模块 DTO ──

// ShiftDayResponse 单日排班响应
type ShiftDayResponse struct {
	ID         string `json:"id"`
	StringDate string `json:"string_date"` // Jalali "YYYY-MM-DD"
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Day        int    `json:"day"`
	Morning    bool   `json:"morning"`
	Afternoon  bool   `json:"afternoon"`
	Night      bool   `json:"night"`
}

// MonthViewResponse 月视图响应
type MonthViewResponse struct {
	Year              int                `json:"year"`
	Month             int                `json:"month"`
	MonthName         string             `json:"month_name"`
	Editable          bool               `json:"editable"`
	RequestWindowOpen bool               `json:"request_window_open"`
	Days              []ShiftDayResponse `json:"days"`
	Discount          *DiscountResponse  `json:"discount,omitempty"`
	DiscountEditable  bool               `json:"discount_editable"`
}

// SetFlagRequest 选班请求（开放窗口内直接置位某时段）
type SetFlagRequest struct {
	Date string `json:"date" binding:"required"` // Jalali "YYYY-MM-DD"
	Slot string `json:"slot" binding:"required,oneof=morning afternoon night"`
}

// ── 改班申请 DTO ──

// FileEditRequest 提交改班申请
type FileEditRequest struct {
	Date      string `json:"date" binding:"required"` // Jalali "YYYY-MM-DD"
	Morning   bool   `json:"morning"`
	Afternoon bool   `json:"afternoon"`
	Night     bool   `json:"night"`
}

// EditRequestResponse 改班申请响应
type EditRequestResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name,omitempty"`
	StringDate  string `json:"string_date"`
	Morning     bool   `json:"morning"`
	Afternoon   bool   `json:"afternoon"`
	Night       bool   `json:"night"`
	IsApproved  bool   `json:"is_approved"`
	RequestedAt string `json:"requested_at"`
}

// QuotaResponse 当月改班配额响应
type QuotaResponse struct {
	Year        int `json:"year"`
	Month       int `json:"month"`
	ChangeCount int `json:"change_count"`
	ChangeLimit int `json:"change_limit"`
}

// ── 折扣申报 DTO ──

// DeclareDiscountRequest 折扣申报请求
type DeclareDiscountRequest struct {
	Percent float64 `json:"percent" binding:"required,gt=0,lte=100"`
}

// DiscountResponse 折扣申报响应
type DiscountResponse struct {
	ID         string  `json:"id"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	Percent    float64 `json:"percent"`
	SubmitDate string  `json:"submit_date"`
}
