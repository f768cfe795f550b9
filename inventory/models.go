package inventory

// Book is one catalog item. ID is supplied by the operator, not generated.
type Book struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Qty    int64  `json:"qty"`
}

// Role is the authorization level derived from a username.
type Role string

const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

// AdminUsername and AdminPassword are the credentials seeded into a fresh database.
const (
	AdminUsername = "admin"
	AdminPassword = "adm1n"
)

// Session is the authenticated operator for the lifetime of the process.
type Session struct {
	Username string
	Role     Role
}

// NewSession derives the role from the username.
func NewSession(username string) *Session {
	role := RoleStandard
	if username == AdminUsername {
		role = RoleAdmin
	}
	return &Session{Username: username, Role: role}
}

// IsAdmin reports whether the session may manage accounts.
func (s *Session) IsAdmin() bool { return s != nil && s.Role == RoleAdmin }

// BookField names a column that UpdateBookField may overwrite.
type BookField string

const (
	FieldTitle  BookField = "title"
	FieldAuthor BookField = "author"
	FieldQty    BookField = "qty"
)

// seedBooks are inserted with insert-or-ignore semantics on every Initialize.
var seedBooks = []Book{
	{ID: 3001, Title: "A Tale of Two Cities", Author: "Charles Dickens", Qty: 30},
	{ID: 3002, Title: "Harry Potter and the Philosopher's Stone", Author: "J.K. Rowling", Qty: 40},
	{ID: 3003, Title: "The Lion, the Witch and the Wardrobe", Author: "C. S. Lewis", Qty: 25},
	{ID: 3004, Title: "The Lord of the Rings", Author: "J.R.R Tolkien", Qty: 37},
	{ID: 3005, Title: "Alice in Wonderland", Author: "Lewis Carroll", Qty: 12},
}
