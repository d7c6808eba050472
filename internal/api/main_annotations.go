// @title           OmaHub API
// @version         1.0
// @description     Fashion marketplace platform. Administrative endpoints authenticate with a Personal Access Token.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerToken
// @in              header
// @name            Authorization
// @description     Type "Bearer" followed by a space and your API token. Example: "Bearer oh_xxx"
package api
