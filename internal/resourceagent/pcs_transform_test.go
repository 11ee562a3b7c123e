package resourceagent

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fenceName     = AgentName{Standard: "stonith", Type: "fence_xvm"}
	schedulerName = NewFakeAgentName(FakeAgentPacemakerSchedulerd)
)

func TestTranslateActionRoles(t *testing.T) {
	in := Metadata{
		Name: dummyName,
		Actions: []Action{
			{Name: "monitor", Role: strPtr("Master")},
			{Name: "monitor", Role: strPtr("Slave")},
			{Name: "monitor", Role: strPtr("Started")},
			{Name: "start"},
		},
	}
	out := PcsTransform(in)

	assert.Equal(t, "Promoted", *out.Actions[0].Role)
	assert.Equal(t, "Unpromoted", *out.Actions[1].Role)
	assert.Equal(t, "Started", *out.Actions[2].Role)
	assert.Nil(t, out.Actions[3].Role)
	assert.Equal(t, "Master", *in.Actions[0].Role, "input must not change")
}

func TestEnumExtraction(t *testing.T) {
	md := PcsTransform(Metadata{
		Name: schedulerName,
		Parameters: []Parameter{{
			Name:     "no-quorum-policy",
			Type:     "enum",
			Default:  strPtr("stop"),
			Longdesc: strPtr("Behavior.  Allowed values: freeze, ignore, demote"),
		}},
	})

	param := md.Parameters[0]
	assert.Equal(t, "select", param.Type)
	assert.Equal(t, []string{"freeze", "ignore", "demote", "stop"}, param.EnumValues)
	assert.Equal(t, "Behavior.", *param.Longdesc)
}

func TestEnumExtractionWithoutMarker(t *testing.T) {
	in := Parameter{
		Name:      "placement-strategy",
		Type:      "enum",
		Shortdesc: strPtr("How to place resources"),
		Longdesc:  strPtr("How to place resources across nodes"),
	}

	out := removeEnumValuesFromDescription(extractEnumValuesFromDescription(in))
	assert.Equal(t, "select", out.Type)
	require.NotNil(t, out.EnumValues)
	assert.Empty(t, out.EnumValues)
	assert.Equal(t, in.Shortdesc, out.Shortdesc)
	assert.Equal(t, in.Longdesc, out.Longdesc)
}

func TestRemoveEnumValuesFromSelect(t *testing.T) {
	in := Parameter{
		Name:       "stonith-action",
		Type:       "select",
		EnumValues: []string{"reboot", "off"},
		Longdesc:   strPtr("Action to send.  Allowed values: reboot, off"),
	}
	out := removeEnumValuesFromDescription(in)
	assert.Equal(t, "Action to send.", *out.Longdesc)
	assert.Equal(t, []string{"reboot", "off"}, out.EnumValues)
}

func TestFakeAgentDescriptions(t *testing.T) {
	md := PcsTransform(Metadata{
		Name: schedulerName,
		Parameters: []Parameter{
			{Name: "same", Shortdesc: strPtr("Same text"), Longdesc: strPtr("Same text")},
			{Name: "adv", Shortdesc: strPtr("Advanced use only: Cluster recheck interval"), Longdesc: strPtr("Polling interval")},
			{Name: "adv2", Shortdesc: strPtr("*** Advanced Use Only ***")},
			{Name: "not-adv", Shortdesc: strPtr("Not for Advanced use only:")},
			{Name: "join", Shortdesc: strPtr("Short."), Longdesc: strPtr("Long")},
			{Name: "prefixed", Shortdesc: strPtr("Short"), Longdesc: strPtr("Short and long")},
		},
	})

	same, _ := md.Parameter("same")
	assert.Equal(t, "Same text", *same.Shortdesc)
	assert.Nil(t, same.Longdesc)

	adv, _ := md.Parameter("adv")
	assert.True(t, adv.Advanced)
	assert.Equal(t, "Cluster recheck interval", *adv.Shortdesc)
	assert.Equal(t, "Cluster recheck interval.\nPolling interval", *adv.Longdesc)

	adv2, _ := md.Parameter("adv2")
	assert.True(t, adv2.Advanced)
	assert.Nil(t, adv2.Shortdesc)

	notAdv, _ := md.Parameter("not-adv")
	assert.False(t, notAdv.Advanced)

	join, _ := md.Parameter("join")
	assert.Equal(t, "Short.\nLong", *join.Longdesc)

	prefixed, _ := md.Parameter("prefixed")
	assert.Equal(t, "Short and long", *prefixed.Longdesc)
}

func TestFakeAgentStepsSkippedForRealAgents(t *testing.T) {
	md := PcsTransform(Metadata{
		Name:       dummyName,
		Parameters: []Parameter{{Name: "e", Type: "enum", Shortdesc: strPtr("x"), Longdesc: strPtr("x")}},
	})
	assert.Equal(t, "enum", md.Parameters[0].Type)
	assert.NotNil(t, md.Parameters[0].Longdesc)
}

func TestStonithTransform(t *testing.T) {
	md := PcsTransform(Metadata{
		Name: fenceName,
		Parameters: []Parameter{
			{Name: "help"},
			{Name: "version"},
			{Name: "action", Required: true},
			{Name: "port", Required: true},
		},
	})

	want := []ParameterDto{
		{
			Name:         "action",
			Advanced:     true,
			Deprecated:   true,
			DeprecatedBy: []string{"pcmk_off_action", "pcmk_reboot_action"},
		},
		{Name: "port"},
	}
	var got []ParameterDto
	for _, param := range md.Parameters {
		got = append(got, param.ToDto())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected parameters (-want +got):\n%s", diff)
	}
}

func TestStonithActionKeepsExistingReplacements(t *testing.T) {
	md := PcsTransform(Metadata{
		Name:       fenceName,
		Parameters: []Parameter{{Name: "action", DeprecatedBy: []string{"method"}}},
	})
	assert.Equal(t, []string{"pcmk_off_action", "pcmk_reboot_action", "method"}, md.Parameters[0].DeprecatedBy)
}

func TestStonithPortChain(t *testing.T) {
	md := PcsTransform(Metadata{
		Name: fenceName,
		Parameters: []Parameter{
			{Name: "old-port", Required: true, DeprecatedBy: []string{"port"}},
			{Name: "port", Required: true, DeprecatedBy: []string{"new-port"}},
			{Name: "new-port", Required: true, DeprecatedBy: []string{"new-port2a", "new-port2b"}},
			{Name: "new-port2a", Required: true},
			{Name: "new-port2b", Required: true},
			{Name: "ipaddr", Required: true},
		},
	})

	for _, param := range md.Parameters {
		assert.Equal(t, param.Name == "ipaddr", param.Required, param.Name)
	}
}

func TestStonithPortChainCycle(t *testing.T) {
	md := PcsTransform(Metadata{
		Name: fenceName,
		Parameters: []Parameter{
			{Name: "port", Required: true, DeprecatedBy: []string{"plug"}},
			{Name: "plug", Required: true, DeprecatedBy: []string{"port"}},
		},
	})
	for _, param := range md.Parameters {
		assert.False(t, param.Required, param.Name)
	}
}

func TestStonithStepsSkippedForResources(t *testing.T) {
	md := PcsTransform(Metadata{
		Name:       dummyName,
		Parameters: []Parameter{{Name: "help"}, {Name: "port", Required: true}},
	})
	assert.Equal(t, []string{"help", "port"}, md.ParameterNames())
	assert.True(t, md.Parameters[1].Required)
}

func TestTraceParameters(t *testing.T) {
	params := traceParameters([]Parameter{{Name: "ip"}})
	require.Len(t, params, 2)
	assert.Equal(t, "trace_ra", params[0].Name)
	assert.Equal(t, "0", *params[0].Default)
	assert.True(t, params[0].Advanced)
	assert.Equal(t, "trace_file", params[1].Name)

	params = traceParameters([]Parameter{{Name: "trace_ra"}})
	require.Len(t, params, 1)
	assert.Equal(t, "trace_file", params[0].Name)
}
