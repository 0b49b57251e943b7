package model

// 用户角色
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User 用户表 — 对应 users
// 账号以手机号为唯一标识，注册后默认未确认（is_confirmed=false），
// 需管理员确认后方可登录使用排班功能
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	PhoneNumber  string `gorm:"type:varchar(13);not null;uniqueIndex:uq_users_phone" json:"phone_number"`
	FirstName    string `gorm:"type:varchar(50);not null"                      json:"first_name"`
	LastName     string `gorm:"type:varchar(50);not null"                      json:"last_name"`
	Address      string `gorm:"type:text"                                      json:"address,omitempty"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'member'"     json:"role"`
	IsConfirmed  bool   `gorm:"not null;default:false"                         json:"is_confirmed"`
	ProfileImage string `gorm:"type:varchar(255)"                              json:"profile_image,omitempty"`
	IDCardImage  string `gorm:"type:varchar(255)"                              json:"id_card_image,omitempty"`
	DegreeImage  string `gorm:"type:varchar(255)"                              json:"degree_image,omitempty"`
	LicenseImage string `gorm:"type:varchar(255)"                              json:"license_image,omitempty"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// FullName 姓名拼接
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
