//go:generate swag init -g docs.go -o ../../docs --parseDependency --parseInternal --dir .,../../internal/httpapi

package main

// @title sniply_projects API
// @version 1.0
// @description Project snippets with visibility rules and spam admission.
// @BasePath /v1
// @securityDefinitions.apikey SessionAuth
// @in cookie
// @name sniply_projects_session
// @description HttpOnly session cookie. Writes also need the X-CSRF-Token header.
// @tag.name snippets
// @tag.description Project snippets. Reads honour visibility; writes pass the spam admission check.
// @tag.name projects
// @tag.description Projects and their members.
// @tag.name admin
// @tag.description Review of rejected spam submissions.
