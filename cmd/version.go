package cmd

// Version is the bump CLI version, overridden at release time via
// -ldflags "-X github.com/bcomnes/bump/cmd.Version=...".
var Version = "dev"
