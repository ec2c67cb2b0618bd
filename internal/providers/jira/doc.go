// Package jira implements the tickets capability against the Jira REST API.
package jira
