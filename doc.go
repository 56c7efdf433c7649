// Package main provides the entry point for the chatter bot groups service.
// It runs a Fiber based web service that receives collaboration group trigger
// events and inbound bot emails from a Salesforce org, keeps a local mirror of
// the org's collaboration groups using gorm for persistence, and posts feed
// elements back to Chatter through the Salesforce Connect REST API.
package main
