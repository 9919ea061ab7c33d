// Package http is the request/response abstraction the pipeline works on.
//
// # Request
//
// Request wraps *http.Request together with the application container and
// the name of the module that owns the matched route.
//
//	id, err := gohttp.Param[uint64](req, "id")          // 400 on bad input
//	dto, err := gohttp.Body[CreateUserDTO](req)         // 400 on bad JSON
//	dto, err := gohttp.ValidatedBody[CreateUserDTO](req) // + dto.Validate()
//	users, err := gohttp.Inject[*UsersService](req)     // 500 when missing
//
// # Response
//
// Handlers and interceptors exchange *Response values; nothing is written to
// the wire until the pipeline has finished.
//
//	gohttp.Success(user)              // 200 {"data": user}
//	gohttp.Created(user)              // 201 {"data": user}
//	gohttp.JSON(http.StatusOK, v)     // 200 v
//	gohttp.Text(http.StatusOK, "OK")  // 200 text/plain
//	gohttp.NoContent()                // 204
//
// # Errors
//
// HttpException is the one error type every stage uses. Returned from a
// handler, guard or extractor it renders as
//
//	{"statusCode": 404, "error": "Not Found", "message": "user with id 3 not found"}
package http
