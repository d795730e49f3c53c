// @title           CodeCache Manager API
// @version         1.0
// @description     Multi-tenant code-snippet sharing backend. Authenticate with a JWT access token.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerToken
// @in              header
// @name            Authorization
// @description     Type "Bearer" followed by a space and your access token.
package api
