package domain

// Identity is the opaque payload a client supplies at login and gets back
// from every verified session token.
type Identity map[string]any

// UID returns the "uid" claim when the payload carries one.
func (i Identity) UID() (string, bool) {
	v, ok := i["uid"].(string)
	return v, ok && v != ""
}

// Subject picks a loggable user reference from the payload.
func (i Identity) Subject() string {
	if uid, ok := i.UID(); ok {
		return uid
	}
	if email, ok := i["email"].(string); ok {
		return email
	}
	return ""
}
