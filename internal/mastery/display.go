package mastery

// Skills lists the tracked skills in assessment priority order.
func Skills() []Skill {
	return []Skill{SkillBalance, SkillInverse, SkillSolving}
}

// Label returns a short human-readable name for a skill.
func (s Skill) Label() string {
	switch s {
	case SkillBalance:
		return "Balance"
	case SkillInverse:
		return "Inverse ops"
	case SkillSolving:
		return "Solving"
	}
	return string(s)
}

// Score returns a skill's value from the snapshot.
func (s Snapshot) Score(skill Skill) float64 {
	switch skill {
	case SkillBalance:
		return s.Balance
	case SkillInverse:
		return s.Inverse
	case SkillSolving:
		return s.Solving
	}
	return 0
}

// Label returns a display name for a concept level.
func (l ConceptLevel) Label() string {
	switch l {
	case LevelBalance:
		return "Balance understanding"
	case LevelInverse:
		return "Inverse operations"
	case LevelSingleStep:
		return "Single-step equations"
	case LevelMultiStep:
		return "Multi-step equations"
	}
	return string(l)
}
