// Package shellcmd builds the argument vectors for the external tools
// vpnkeeper drives: the SSL VPN client, net use, tasklist, taskkill and a
// browser. Builders only produce argv; running them is the runner's job.
package shellcmd

import (
	"strings"

	"github.com/dmitrijs2005/vpnkeeper/internal/common"
)

// Command is an argv plus the secret it embeds, if any. String renders the
// command with the secret masked and is the only form that may be logged.
type Command struct {
	Argv   []string
	Secret string

	// secretArg is the index of the argument ending in Secret; 0 means none.
	secretArg int
}

func (c Command) String() string {
	parts := append([]string(nil), c.Argv...)
	if i := c.secretArg; c.Secret != "" && i > 0 && i < len(parts) && strings.HasSuffix(parts[i], c.Secret) {
		parts[i] = strings.TrimSuffix(parts[i], c.Secret) + common.Mask
	}
	return strings.Join(parts, " ")
}

// VPNConnect is `<client> /connect /server:<s> /username:<u> /password:<p>`.
func VPNConnect(client, server, username, password string) Command {
	return Command{
		Argv: []string{
			client,
			"/connect",
			"/server:" + server,
			"/username:" + username,
			"/password:" + password,
		},
		Secret:    password,
		secretArg: 4,
	}
}

func VPNDisconnect(client string) Command {
	return Command{Argv: []string{client, "/disconnect"}}
}

// NetUseMap maps drive to path. With an empty user the current Windows
// session credentials are used and no password is passed.
func NetUseMap(drive, path, user, password string) Command {
	argv := []string{"net", "use", drive, path}
	if user == "" {
		return Command{Argv: argv}
	}
	argv = append(argv, "/user:"+user)
	if password == "" {
		return Command{Argv: argv}
	}
	return Command{Argv: append(argv, password), Secret: password, secretArg: len(argv)}
}

// NetUseDelete is `net use <drive> /delete /Y`.
func NetUseDelete(drive string) Command {
	return Command{Argv: []string{"net", "use", drive, "/delete", "/Y"}}
}

// NetUseList is plain `net use`, listing current mappings.
func NetUseList() Command {
	return Command{Argv: []string{"net", "use"}}
}

// TaskKill force-terminates every process with the given image name.
func TaskKill(image string) Command {
	return Command{Argv: []string{"taskkill", "/IM", image, "/F"}}
}

// TaskList lists processes with the given image name, without header.
func TaskList(image string) Command {
	return Command{Argv: []string{"tasklist", "/FI", "IMAGENAME eq " + image, "/NH"}}
}

// Browser opens url in the browser at path.
func Browser(path, url string) Command {
	return Command{Argv: []string{path, url}}
}

// DriveUser builds the `DOMAIN\user` form net use expects. Any domain
// prefix already typed into username is replaced by domain.
func DriveUser(domain, username string) string {
	if i := strings.LastIndex(username, `\`); i >= 0 {
		username = username[i+1:]
	}
	if username == "" {
		return ""
	}
	if domain == "" {
		return username
	}
	return domain + `\` + username
}

// TaskListHas reports whether tasklist output lists the image. tasklist
// prints an INFO line instead of a table when nothing matches.
func TaskListHas(output, image string) bool {
	return strings.Contains(strings.ToLower(output), strings.ToLower(image))
}
