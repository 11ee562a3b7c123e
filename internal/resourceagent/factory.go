package resourceagent

import (
	"context"

	"github.com/bgdnvk/pcmkctl/internal/reports"
)

// MetadataLoader obtains raw metadata XML. Failures are returned as
// *AgentLoadError or *UnknownFakeAgentError.
type MetadataLoader interface {
	LoadAgentMetadata(ctx context.Context, name AgentName) (string, error)
	LoadFakeAgentMetadata(ctx context.Context, fake string) (string, error)
}

// traceProviders are the OCF providers whose agents source ocf-shellfuncs
// and therefore support the trace parameters.
var traceProviders = map[string]bool{
	"heartbeat": true,
	"pacemaker": true,
}

// FacadeFactory resolves agent names to Facades.
//
// Parameters of pacemaker-fenced are loaded on the first fence agent and kept
// for the lifetime of the factory. A FacadeFactory is not safe for
// concurrent use.
type FacadeFactory struct {
	loader    MetadataLoader
	validator SchemaValidator
	reporter  reports.Processor

	fencedLoaded bool
	fencedParams []Parameter
}

// NewFacadeFactory creates a factory. Reports of recoverable problems go to
// reporter, a nil reporter drops them.
func NewFacadeFactory(loader MetadataLoader, validator SchemaValidator, reporter reports.Processor) *FacadeFactory {
	return &FacadeFactory{
		loader:    loader,
		validator: validator,
		reporter:  reporter,
	}
}

// FacadeFromName parses a full agent name and resolves it.
func (f *FacadeFactory) FacadeFromName(ctx context.Context, fullName string) (*Facade, error) {
	name, err := ParseAgentName(fullName)
	if err != nil {
		return nil, err
	}
	return f.FacadeFromParsedName(ctx, name)
}

// FacadeFromParsedName loads, parses and unifies metadata of an installed
// agent.
func (f *FacadeFactory) FacadeFromParsedName(ctx context.Context, name AgentName) (*Facade, error) {
	if name.IsPcmkFakeAgent() {
		return f.FacadeFromPacemakerFakeAgent(ctx, name.Type)
	}
	raw, err := f.loader.LoadAgentMetadata(ctx, name)
	if err != nil {
		return nil, err
	}
	md, err := f.parse(ctx, name, raw)
	if err != nil {
		return nil, err
	}
	return f.facadeFromMetadata(ctx, md), nil
}

// VoidFacadeFromParsedName returns a Facade of an agent which pcs cannot
// load. It has no parameters or actions of its own and is never fetched.
func (f *FacadeFactory) VoidFacadeFromParsedName(ctx context.Context, name AgentName) *Facade {
	md := Metadata{
		Name:        name,
		AgentExists: false,
		OcfVersion:  OcfVersion10,
	}
	return f.facadeFromMetadata(ctx, md)
}

// FacadeFromPacemakerFakeAgent resolves options of a pacemaker daemon or of
// the cluster.
func (f *FacadeFactory) FacadeFromPacemakerFakeAgent(ctx context.Context, fake string) (*Facade, error) {
	name := NewFakeAgentName(fake)
	if !IsFakeAgentName(fake) {
		return nil, &UnknownFakeAgentError{AgentName: fake}
	}
	raw, err := f.loader.LoadFakeAgentMetadata(ctx, fake)
	if err != nil {
		return nil, err
	}
	if fake == FakeAgentClusterOptions {
		if raw, err = UnwrapPacemakerResult(name, raw); err != nil {
			return nil, err
		}
	}
	md, err := f.parse(ctx, name, raw)
	if err != nil {
		return nil, err
	}
	return NewFacade(md, nil), nil
}

func (f *FacadeFactory) parse(ctx context.Context, name AgentName, raw string) (Metadata, error) {
	ocf, err := ParseOcfMetadata(ctx, name, raw, f.validator)
	if err != nil {
		return Metadata{}, err
	}
	return OcfToUnified(ocf), nil
}

func (f *FacadeFactory) facadeFromMetadata(ctx context.Context, md Metadata) *Facade {
	var additional []Parameter
	switch {
	case md.Name.IsStonith():
		declared := make(map[string]bool, len(md.Parameters))
		for _, param := range md.Parameters {
			declared[param.Name] = true
		}
		for _, param := range f.fencedParameters(ctx) {
			if !declared[param.Name] {
				additional = append(additional, param)
			}
		}
	case md.Name.IsOcf() && traceProviders[md.Name.Provider]:
		additional = traceParameters(md.Parameters)
	}
	return NewFacade(md, additional)
}

func (f *FacadeFactory) fencedParameters(ctx context.Context) []Parameter {
	if f.fencedLoaded {
		return f.fencedParams
	}
	facade, err := f.FacadeFromPacemakerFakeAgent(ctx, FakeAgentPacemakerFenced)
	if err != nil {
		f.report(ErrorToReport(err, reports.Warning()))
		facade = NewFacade(Metadata{Name: NewFakeAgentName(FakeAgentPacemakerFenced), OcfVersion: OcfVersion10}, nil)
	}
	f.fencedParams = facade.Metadata().Parameters
	f.fencedLoaded = true
	return f.fencedParams
}

func (f *FacadeFactory) report(items ...reports.Item) {
	if f.reporter != nil {
		f.reporter.Report(items...)
	}
}
