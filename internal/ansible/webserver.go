package ansible

import "fmt"

// statusPageScript writes the landing page from values each node fetches
// out of its own instance metadata service, so every node reports exactly
// its own identity.
const statusPageScript = `MD=http://169.254.169.254/latest/meta-data
INSTANCE_ID=$(curl -s $MD/instance-id)
AZ=$(curl -s $MD/placement/availability-zone)
PUBLIC_HOSTNAME=$(curl -s $MD/public-hostname)
PUBLIC_IP=$(curl -s $MD/public-ipv4)
PRIVATE_HOSTNAME=$(curl -s $MD/local-hostname)
PRIVATE_IP=$(curl -s $MD/local-ipv4)
cat > /var/www/html/index.html <<EOF
<html>
<head><title>$INSTANCE_ID</title></head>
<body>
<h1>$INSTANCE_ID</h1>
<ul>
<li>Availability zone: $AZ</li>
<li>Public hostname: $PUBLIC_HOSTNAME</li>
<li>Public address: $PUBLIC_IP</li>
<li>Private hostname: $PRIVATE_HOSTNAME</li>
<li>Private address: $PRIVATE_IP</li>
</ul>
</body>
</html>
EOF`

// WebServerPlaybook builds the playbook that installs and starts the web
// server on every managed host and publishes a per-node status page on the
// given port.
func WebServerPlaybook(httpPort int) Playbook {
	tasks := []Task{
		{
			Name: "Install web server",
			Action: map[string]any{
				"yum": map[string]any{
					"name":  "httpd",
					"state": "present",
				},
			},
		},
	}

	// The default port needs no configuration rewrite
	if httpPort != 80 {
		tasks = append(tasks, Task{
			Name: "Configure listen port",
			Action: map[string]any{
				"lineinfile": map[string]any{
					"path":   "/etc/httpd/conf/httpd.conf",
					"regexp": "^Listen ",
					"line":   fmt.Sprintf("Listen %d", httpPort),
				},
			},
		})
	}

	tasks = append(tasks,
		Task{
			Name: "Publish instance status page",
			Action: map[string]any{
				"shell": statusPageScript,
			},
		},
		Task{
			Name: "Start and enable web server",
			Action: map[string]any{
				"service": map[string]any{
					"name":    "httpd",
					"state":   "started",
					"enabled": true,
				},
			},
		},
	)

	return Playbook{
		{
			Name:   "Configure web servers",
			Hosts:  "all",
			Become: true,
			Tasks:  tasks,
		},
	}
}
