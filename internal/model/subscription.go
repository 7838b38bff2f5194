package model

// Subscription 是用户之间的关注关系，Subscriber关注Channel
type Subscription struct {
	BaseModel
	Subscriber string `gorm:"type:varchar(64);not null;uniqueIndex:idx_sub_pair"`
	Channel    string `gorm:"type:varchar(64);not null;uniqueIndex:idx_sub_pair;index"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
