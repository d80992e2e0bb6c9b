package model

// User represents a reporting user as stored in the `users` table.
// Users are identified by their unique email address: the first
// submission from a new email creates the row, every later submission
// from the same email overwrites the profile fields in place.  Rows
// are never deleted by the submission workflow.
//
// Fields:
//  ID         – primary key identifier of the user.
//  Email      – unique email address (natural key).
//  FirstName  – given name.
//  LastName   – family name.
//  Patronymic – patronymic (middle) name.
//  Phone      – contact phone; "Unknown" when the user did not supply one.
type User struct {
	ID         int64  // users.id
	Email      string // users.email
	FirstName  string // users.first_name
	LastName   string // users.last_name
	Patronymic string // users.patronymic
	Phone      string // users.phone
}

// PhoneUnknown is stored when a submission omits the phone field.
const PhoneUnknown = "Unknown"
