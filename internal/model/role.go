package model

// Role 角色定义。部署时预置 USER / ADMIN 两行，运行期不增删
type Role struct {
	ID          uint64  `gorm:"primaryKey"`
	Name        string  `gorm:"type:varchar(50);uniqueIndex:idx_role_name;not null"`
	Description *string `gorm:"type:varchar(255)"`
}

func (Role) TableName() string {
	return "roles"
}
