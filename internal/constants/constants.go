package constants

const (
	Create   = "CREATE"
	Update   = "UPDATE"
	Delete   = "DELETE"
	Issue    = "ISSUE"
	Return   = "RETURN"
	Register = "REGISTER"
)
