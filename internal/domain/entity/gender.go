package entity

// Gender is the closed set of genders an account can be registered with.
type Gender string

const (
	GenderMan   Gender = "man"
	GenderWomen Gender = "women"
)

func (g Gender) String() string {
	return string(g)
}

// IsValid checks if the Gender is one of the accepted values.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMan, GenderWomen:
		return true
	default:
		return false
	}
}
