package entities

import "context"

type Faq struct {
	ID       uint          `gorm:"primaryKey" json:"id"`
	Question LocalizedText `gorm:"not null" json:"question"`
	Answer   LocalizedText `gorm:"not null" json:"answer"`
	IsActive bool          `gorm:"not null" json:"is_active"`

	Timestamp
}

func (f *Faq) LocalizedQuestion(ctx context.Context) string {
	return f.Question.Resolve(ctx)
}

func (f *Faq) LocalizedAnswer(ctx context.Context) string {
	return f.Answer.Resolve(ctx)
}
