package entity

import "time"

// Actor scopes stored on admin_user.scope. Reps act only on their assigned
// customers; managers and admins hold elevated scope.
const (
	ScopeRep     = "rep"
	ScopeManager = "manager"
	ScopeAdmin   = "admin"
)

// AdminUser is a portal user: a sales rep, warehouse operator or manager.
type AdminUser struct {
	UserID    uint      `gorm:"column:user_id;primaryKey;autoIncrement"`
	TenantID  string    `gorm:"column:tenant_id;type:varchar(36);not null;index"`
	Firstname *string   `gorm:"column:firstname;type:varchar(32)"`
	Lastname  *string   `gorm:"column:lastname;type:varchar(32)"`
	Email     *string   `gorm:"column:email;type:varchar(128)"`
	Username  *string   `gorm:"column:username;type:varchar(40);uniqueIndex"`
	Scope     string    `gorm:"column:scope;type:varchar(16);not null;default:'rep'"`
	IsActive  int16     `gorm:"column:is_active;not null;default:1"`
	Created   time.Time `gorm:"column:created;autoCreateTime"`
	Modified  time.Time `gorm:"column:modified;autoUpdateTime"`
}

func (AdminUser) TableName() string {
	return "admin_user"
}
