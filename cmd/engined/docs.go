package main

// General API documentation for swaggo. Run `swag init` to regenerate docs.
//
// @title           engined API
// @version         1.0
// @description     HTTP API for local LLM engine assembly and status.
//
// @contact.name   engined maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
