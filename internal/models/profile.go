package models

// UserProfile holds the coarse skill signals the coaching prompts key off.
type UserProfile struct {
	UserID       string            `bson:"_id,omitempty" json:"userId,omitempty"`
	Nickname     string            `bson:"nickname,omitempty" json:"nickname,omitempty"`
	PersonalBest float64           `bson:"pb,omitempty" json:"pb,omitempty"` // meters
	IsInstructor bool              `bson:"is_instructor,omitempty" json:"isInstructor,omitempty"`
	Preferences  map[string]string `bson:"preferences,omitempty" json:"preferences,omitempty"`
}

// Merge overlays non-zero fields of override onto p and returns the result.
// Used at request time: fields supplied in the current call win for that turn
// only; the stored profile is untouched unless a save path runs.
func (p UserProfile) Merge(override *UserProfile) UserProfile {
	if override == nil {
		return p
	}
	out := p
	if override.Nickname != "" {
		out.Nickname = override.Nickname
	}
	if override.PersonalBest > 0 {
		out.PersonalBest = override.PersonalBest
	}
	if override.IsInstructor {
		out.IsInstructor = true
	}
	if len(override.Preferences) > 0 {
		merged := make(map[string]string, len(p.Preferences)+len(override.Preferences))
		for k, v := range p.Preferences {
			merged[k] = v
		}
		for k, v := range override.Preferences {
			merged[k] = v
		}
		out.Preferences = merged
	}
	return out
}
