package compute

// controlNodeUserData runs once on first boot and installs the
// configuration-management agent. A failure here is not surfaced through
// the API; the orchestration step will fail instead when the agent binary
// is missing.
const controlNodeUserData = `#!/bin/bash
set -o pipefail
yum update -y
amazon-linux-extras enable ansible2
yum install -y ansible
`
