// Command bump automates semantic-version release bookkeeping: it reconciles
// the manifest version with the latest release tag, updates the manifest, and
// commits and tags the result.
package main

import "github.com/bcomnes/bump/cmd"

func main() {
	cmd.Execute()
}
