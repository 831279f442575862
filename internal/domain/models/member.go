package models

type MemberStatus string

const (
	MemberActive  MemberStatus = "ACTIVE"
	MemberDeleted MemberStatus = "DELETED"
)

// Member участник платформы. Профиль ведется внешним сервисом, здесь только чтение.
type Member struct {
	ID       int64        `json:"member_id"`
	Nickname string       `json:"nickname"`
	Profile  string       `json:"profile"`
	Status   MemberStatus `json:"status"`
}

func (m Member) IsActive() bool {
	return m.Status == MemberActive
}
