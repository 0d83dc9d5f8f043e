//go:build authurl
// +build authurl

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bwmarrin/discordgo"
)

// Prints the OAuth2 authorization URL for adding the bot to a server.
// Run with: go run -tags authurl scripts/authurl.go -client-id <id>
func main() {
	clientID := flag.String("client-id", "", "Discord application client ID (or set DISCORD_CLIENT_ID env var)")
	flag.Parse()

	if *clientID == "" {
		*clientID = os.Getenv("DISCORD_CLIENT_ID")
	}
	if *clientID == "" {
		log.Fatal("Discord client ID is required. Use -client-id flag or set DISCORD_CLIENT_ID env var")
	}

	var permissions int64 = discordgo.PermissionManageRoles |
		discordgo.PermissionManageChannels |
		discordgo.PermissionViewChannel |
		discordgo.PermissionSendMessages |
		discordgo.PermissionCreateInstantInvite

	fmt.Printf("https://discord.com/api/oauth2/authorize?client_id=%s&permissions=%d&scope=bot\n", *clientID, permissions)
}
