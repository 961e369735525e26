package skill

// Skill はスキルエンティティです。名前は一意です。
type Skill struct {
	ID   int64
	Name string
}
