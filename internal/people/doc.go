// Package people implements the person service and its HTTP API.
//
// # Layers
//
// Handler → Service → store.Store. The Handler holds a PersonService, the
// Service holds a store.Store; both are plain constructor arguments.
//
// # HTTP Endpoints
//
//   - POST   /people       create (or replace, when the body carries an id)
//   - GET    /people       list every person
//   - GET    /people/{id}  fetch one person
//   - PUT    /people/{id}  overwrite name, age and profession
//   - DELETE /people/{id}  hard delete
//
// Every reply is an APIResponse envelope:
//
//	{"message": "Success", "body": {"id": 1, "name": "John Doe", "age": 30, "profession": "Engineer"}}
//
// # Error Mapping
//
// The Service turns store.ErrNotFound into *NotFoundError, whose message
// ("Person with id 1 not found") the Handler returns with status 404 and a
// null body. Malformed ids and bodies get 400; anything else is logged and
// answered with 500.
package people
