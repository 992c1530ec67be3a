// Package slug turns labels such as issuer and account names into strings
// that are safe in file names and URLs.
//
// Accented letters are folded to ASCII with golang.org/x/text (NFKD
// decomposition, combining marks removed), letters without a decomposition
// such as "ß" or "ø" use a small fallback table, and every other run of
// non-alphanumeric characters collapses into one separator.
//
// # Usage
//
//	slug.Make("Café Crème")            // "cafe-creme"
//	slug.Make("alice@example.com")     // "alice-example-com"
//	slug.Make("Hello World", slug.Separator("_"), slug.MaxLength(8)) // "hello_wo"
package slug
