package cli

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// DefaultOSReleasePath is where the distribution is identified.
const DefaultOSReleasePath = "/etc/os-release"

// packageManager installs packages on one distribution family.
type packageManager struct {
	command  string
	packages map[string]string
}

var packageManagers = map[string]packageManager{
	"rhel": {
		command: "dnf install -y",
		packages: map[string]string{
			"crm_resource":  "pacemaker-cli",
			"crm_attribute": "pacemaker-cli",
			"xmllint":       "libxml2",
		},
	},
	"suse": {
		command: "zypper install -y",
		packages: map[string]string{
			"crm_resource":  "pacemaker-cli",
			"crm_attribute": "pacemaker-cli",
			"xmllint":       "libxml2-tools",
		},
	},
	"debian": {
		command: "apt-get install -y",
		packages: map[string]string{
			"crm_resource":  "pacemaker-cli-utils",
			"crm_attribute": "pacemaker-cli-utils",
			"xmllint":       "libxml2-utils",
		},
	},
}

// distroFamilies maps os-release IDs to a package manager family.
var distroFamilies = map[string]string{
	"rhel":      "rhel",
	"fedora":    "rhel",
	"centos":    "rhel",
	"rocky":     "rhel",
	"almalinux": "rhel",
	"suse":      "suse",
	"sles":      "suse",
	"opensuse":  "suse",
	"debian":    "debian",
	"ubuntu":    "debian",
}

// Installer suggests how to install missing tools on the running system.
type Installer struct {
	family string
}

// NewInstaller identifies the distribution from an os-release file. An
// unreadable or unknown file gives an Installer without hints.
func NewInstaller(osReleasePath string) *Installer {
	f, err := os.Open(osReleasePath)
	if err != nil {
		return &Installer{}
	}
	defer f.Close()
	return NewInstallerFromOSRelease(f)
}

// NewInstallerFromOSRelease identifies the distribution from os-release
// content.
func NewInstallerFromOSRelease(r io.Reader) *Installer {
	var ids []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, found := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !found {
			continue
		}
		value = strings.Trim(value, `"'`)
		switch key {
		case "ID":
			ids = append([]string{value}, ids...)
		case "ID_LIKE":
			ids = append(ids, strings.Fields(value)...)
		}
	}
	for _, id := range ids {
		if family, ok := distroFamilies[strings.ToLower(id)]; ok {
			return &Installer{family: family}
		}
	}
	return &Installer{}
}

// InstallHint returns the command installing the package which provides
// tool, or false when it is not known.
func (i *Installer) InstallHint(tool string) (string, bool) {
	manager, ok := packageManagers[i.family]
	if !ok {
		return "", false
	}
	pkg, ok := manager.packages[tool]
	if !ok {
		return "", false
	}
	return manager.command + " " + pkg, true
}

// AddInstallHints fills the message of missing tools with an install
// command when one is known.
func (i *Installer) AddInstallHints(statuses []DependencyStatus) []DependencyStatus {
	out := make([]DependencyStatus, len(statuses))
	copy(out, statuses)
	for idx, status := range out {
		if status.Installed {
			continue
		}
		if hint, ok := i.InstallHint(status.Name); ok {
			if status.Message != "" {
				status.Message += "; "
			}
			out[idx].Message = status.Message + "install with: " + hint
		}
	}
	return out
}
