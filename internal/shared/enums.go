package shared

// SkillLevel is shared by accounts and posts
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillCasual       SkillLevel = "casual"
	SkillProfessional SkillLevel = "professional"
)

// SkillLevels lists every accepted value, in display order
var SkillLevels = []interface{}{SkillBeginner, SkillCasual, SkillProfessional}

func (s SkillLevel) Valid() bool {
	switch s {
	case SkillBeginner, SkillCasual, SkillProfessional:
		return true
	}
	return false
}
