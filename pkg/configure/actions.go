package configure

import (
	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/registry"
	"github.com/arthur-debert/provisio/pkg/types"
)

const aptNoninteractive = `// Managed by provisio
APT::Get::Assume-Yes "true";
APT::Install-Recommends "false";
Dpkg::Options {
   "--force-confdef";
   "--force-confold";
};
`

const doasConf = `permit nopass :wheel as root
`

const usernsConf = `# Managed by provisio
kernel.unprivileged_userns_clone = 1
`

const motd = `This system was provisioned by provisio.
`

var builtins = registry.New[types.ConfigAction]()

func init() {
	for _, a := range []types.ConfigAction{
		{
			Name:    "apt-noninteractive",
			Path:    "/etc/apt/apt.conf.d/90provisio-noninteractive",
			Mode:    0644,
			Content: types.Literal(aptNoninteractive),
		},
		{
			Name:    "doas",
			Path:    "/etc/doas.conf",
			Mode:    0400,
			Content: types.Literal(doasConf),
		},
		{
			Name:    "userns",
			Path:    "/etc/sysctl.d/90-provisio-userns.conf",
			Mode:    0644,
			Content: types.Literal(usernsConf),
		},
		{
			Name:    "motd",
			Path:    "/etc/motd.d/provisio",
			Mode:    0644,
			Content: types.Literal(motd),
		},
	} {
		registry.MustRegister(builtins, a.Name, a)
	}
}

// Action returns the built-in action registered under name
func Action(name string) (types.ConfigAction, error) {
	a, err := builtins.Get(name)
	if err != nil {
		return types.ConfigAction{}, errors.Wrapf(err, errors.ErrConfigValid,
			"unknown configuration action %q (known: %v)", name, builtins.List())
	}
	return a, nil
}

// Actions resolves names in order
func Actions(names []string) ([]types.ConfigAction, error) {
	out := make([]types.ConfigAction, 0, len(names))
	for _, name := range names {
		a, err := Action(name)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// ActionNames lists the built-in actions
func ActionNames() []string {
	return builtins.List()
}
