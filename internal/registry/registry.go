// internal/registry/registry.go
package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/lancechain/registry_be/internal/models"
)

// Call carries the per-call context supplied by the dispatcher: the
// authenticated caller, the payment accompanying the call and the current
// time in unix seconds. Nothing is cached across calls.
type Call struct {
	Caller  string
	Payment uint64
	Now     int64
}

// Fees are the minimal amounts required to accept each state-changing call.
type Fees struct {
	Registration uint64
	Project      uint64
	Proposal     uint64
}

type Options struct {
	Verifier Verifier
	Fees     Fees
	// MaxSignatureAge bounds how old a registration signature's timestamp
	// may be, in seconds.
	MaxSignatureAge int64
}

// Registry is the access-controlled state core: a profile map keyed by
// wallet address and an append-only project sequence. Every operation is
// atomic — all checks run before the first write, so a failed call leaves
// no observable mutation.
type Registry struct {
	mu        sync.Mutex
	verifier  Verifier
	fees      Fees
	maxSigAge int64

	profiles map[string]*models.Profile
	projects []*models.Project
}

func New(opts Options) *Registry {
	if opts.Verifier == nil {
		opts.Verifier = EthVerifier{}
	}
	if opts.Fees.Registration == 0 {
		opts.Fees.Registration = 1
	}
	if opts.Fees.Project == 0 {
		opts.Fees.Project = 1
	}
	if opts.Fees.Proposal == 0 {
		opts.Fees.Proposal = 1
	}
	if opts.MaxSignatureAge == 0 {
		opts.MaxSignatureAge = 300
	}
	return &Registry{
		verifier:  opts.Verifier,
		fees:      opts.Fees,
		maxSigAge: opts.MaxSignatureAge,
		profiles:  make(map[string]*models.Profile),
	}
}

type RegisterProfileInput struct {
	Name        string
	Photo       string
	Role        models.Role
	Skills      []string
	Education   string
	Experiences []models.Experience
	Portfolio   []models.PortfolioItem
	// SignedAt is the timestamp the caller bound into the signature.
	SignedAt  int64
	Signature string
}

type UpdateProfileInput struct {
	Name        string
	Photo       string
	Skills      []string
	Education   string
	Experiences []models.Experience
	Portfolio   []models.PortfolioItem
}

// ProfileView is the base read: sub-records are exposed by count only and
// fetched individually through Experience/PortfolioItem.
type ProfileView struct {
	Address         string      `json:"address"`
	Name            string      `json:"name"`
	Photo           string      `json:"photo"`
	Role            models.Role `json:"role"`
	Skills          []string    `json:"skills"`
	Education       string      `json:"education"`
	ExperienceCount int         `json:"experience_count"`
	PortfolioCount  int         `json:"portfolio_count"`
}

type RegisterProjectInput struct {
	Title            string
	Description      string
	RequiredSkills   []string
	DurationDays     uint64
	Amount           uint64
	ProposalDeadline int64
}

type SubmitProposalInput struct {
	Pitch        string
	Amount       uint64
	DurationDays uint64
}

type ProjectView struct {
	ID               uint64   `json:"id"`
	Employer         string   `json:"employer"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	RequiredSkills   []string `json:"required_skills"`
	DurationDays     uint64   `json:"duration_days"`
	Amount           uint64   `json:"amount"`
	Open             bool     `json:"open"`
	ProposalDeadline int64    `json:"proposal_deadline"`
	ProposalCount    int      `json:"proposal_count"`
}

// RegisterProfile creates the caller's profile after fee, validation and
// signature checks. Duplicate registrations are rejected: silently
// overwriting would let a caller re-sign into a different role.
func (r *Registry) RegisterProfile(call Call, in RegisterProfileInput) (*ProfileRegistered, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if call.Payment < r.fees.Registration {
		return nil, &InsufficientFeeError{Required: r.fees.Registration, Given: call.Payment}
	}
	if !ValidAddress(call.Caller) {
		return nil, &ValidationError{Field: "address", Reason: "must be a hex wallet address"}
	}
	if !in.Role.Valid() {
		return nil, &ValidationError{Field: "role", Reason: "must be freelancer or employer"}
	}
	if err := validateProfileFields(in.Name, in.Photo, in.Education, in.Skills, in.Experiences, in.Portfolio); err != nil {
		return nil, err
	}

	addr := NormalizeAddress(call.Caller)
	if _, exists := r.profiles[addr]; exists {
		return nil, &AlreadyRegisteredError{Address: addr}
	}

	if in.SignedAt > call.Now || call.Now-in.SignedAt > r.maxSigAge {
		return nil, &InvalidSignatureError{Reason: "signature timestamp outside acceptance window"}
	}
	if err := r.verifier.Verify(addr, in.Role, in.SignedAt, in.Signature); err != nil {
		return nil, err
	}

	now := time.Unix(call.Now, 0).UTC()
	r.profiles[addr] = &models.Profile{
		Address:     addr,
		Name:        in.Name,
		Photo:       in.Photo,
		Role:        in.Role,
		Skills:      copyStrings(in.Skills),
		Education:   in.Education,
		Experiences: copyExperiences(in.Experiences),
		Portfolio:   copyPortfolio(in.Portfolio),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return &ProfileRegistered{Address: addr, Role: in.Role}, nil
}

// UpdateProfile overwrites the caller's mutable fields. Role and address
// are never touched.
func (r *Registry) UpdateProfile(call Call, in UpdateProfileInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[NormalizeAddress(call.Caller)]
	if !ok {
		return &AccessDeniedError{Need: "ownership of a registered profile"}
	}
	if err := validateProfileFields(in.Name, in.Photo, in.Education, in.Skills, in.Experiences, in.Portfolio); err != nil {
		return err
	}

	p.Name = in.Name
	p.Photo = in.Photo
	p.Skills = copyStrings(in.Skills)
	p.Education = in.Education
	p.Experiences = copyExperiences(in.Experiences)
	p.Portfolio = copyPortfolio(in.Portfolio)
	p.UpdatedAt = time.Unix(call.Now, 0).UTC()
	return nil
}

// Profile is the base read, gated to the owner and employers.
func (r *Registry) Profile(call Call, target string) (*ProfileView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.viewableProfile(call.Caller, target)
	if err != nil {
		return nil, err
	}
	return &ProfileView{
		Address:         p.Address,
		Name:            p.Name,
		Photo:           p.Photo,
		Role:            p.Role,
		Skills:          copyStrings(p.Skills),
		Education:       p.Education,
		ExperienceCount: len(p.Experiences),
		PortfolioCount:  len(p.Portfolio),
	}, nil
}

func (r *Registry) Experience(call Call, target string, index int) (*models.Experience, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.viewableProfile(call.Caller, target)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(p.Experiences) {
		return nil, &NotFoundError{Kind: "experience", Ref: fmt.Sprintf("index %d", index)}
	}
	exp := p.Experiences[index]
	return &exp, nil
}

func (r *Registry) PortfolioItem(call Call, target string, index int) (*models.PortfolioItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.viewableProfile(call.Caller, target)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(p.Portfolio) {
		return nil, &NotFoundError{Kind: "portfolio item", Ref: fmt.Sprintf("index %d", index)}
	}
	item := p.Portfolio[index]
	return &item, nil
}

// RegisterProject appends a new open project; the id equals the current
// sequence length, so ids are monotonic and never reused.
func (r *Registry) RegisterProject(call Call, in RegisterProjectInput) (*ProjectRegistered, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	caller, ok := r.profiles[NormalizeAddress(call.Caller)]
	if !ok || caller.Role != models.RoleEmployer {
		return nil, &AccessDeniedError{Need: "employer role"}
	}
	if call.Payment < r.fees.Project {
		return nil, &InsufficientFeeError{Required: r.fees.Project, Given: call.Payment}
	}
	if err := requireText("title", in.Title, models.TitleMaxLen); err != nil {
		return nil, err
	}
	if err := validateSkills("required_skills", in.RequiredSkills); err != nil {
		return nil, err
	}
	if err := requirePositive("duration_days", in.DurationDays); err != nil {
		return nil, err
	}
	if err := requirePositive("amount", in.Amount); err != nil {
		return nil, err
	}
	if in.ProposalDeadline <= call.Now {
		return nil, &DeadlineInvalidError{Deadline: in.ProposalDeadline, Now: call.Now}
	}

	now := time.Unix(call.Now, 0).UTC()
	project := &models.Project{
		ID:               uint64(len(r.projects)),
		Employer:         caller.Address,
		Title:            in.Title,
		Description:      in.Description,
		RequiredSkills:   copyStrings(in.RequiredSkills),
		DurationDays:     in.DurationDays,
		Amount:           in.Amount,
		Open:             true,
		ProposalDeadline: in.ProposalDeadline,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	r.projects = append(r.projects, project)
	return &ProjectRegistered{ID: project.ID}, nil
}

// UpdateProject overwrites the description and open flag only.
func (r *Registry) UpdateProject(call Call, id uint64, description string, open bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id >= uint64(len(r.projects)) {
		return &NotFoundError{Kind: "project", Ref: fmt.Sprintf("id %d", id)}
	}
	project := r.projects[id]
	if !sameAddress(call.Caller, project.Employer) {
		return &AccessDeniedError{Need: "ownership of this project"}
	}

	project.Description = description
	project.Open = open
	project.UpdatedAt = time.Unix(call.Now, 0).UTC()
	return nil
}

// Project reads are unrestricted; proposals stay behind Proposal.
func (r *Registry) Project(id uint64) (*ProjectView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id >= uint64(len(r.projects)) {
		return nil, &NotFoundError{Kind: "project", Ref: fmt.Sprintf("id %d", id)}
	}
	view := r.projectView(r.projects[id])
	return &view, nil
}

func (r *Registry) Projects() []ProjectView {
	r.mu.Lock()
	defer r.mu.Unlock()

	views := make([]ProjectView, 0, len(r.projects))
	for _, p := range r.projects {
		views = append(views, r.projectView(p))
	}
	return views
}

func (r *Registry) ProjectCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint64(len(r.projects))
}

// SubmitProposal appends a proposal to an open project before its deadline.
func (r *Registry) SubmitProposal(call Call, id uint64, in SubmitProposalInput) (*ProposalSubmitted, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	caller, ok := r.profiles[NormalizeAddress(call.Caller)]
	if !ok || caller.Role != models.RoleFreelancer {
		return nil, &AccessDeniedError{Need: "freelancer role"}
	}
	if call.Payment < r.fees.Proposal {
		return nil, &InsufficientFeeError{Required: r.fees.Proposal, Given: call.Payment}
	}
	if err := requireText("pitch", in.Pitch, models.PitchMaxLen); err != nil {
		return nil, err
	}
	if err := requirePositive("amount", in.Amount); err != nil {
		return nil, err
	}
	if err := requirePositive("duration_days", in.DurationDays); err != nil {
		return nil, err
	}
	if id >= uint64(len(r.projects)) {
		return nil, &NotFoundError{Kind: "project", Ref: fmt.Sprintf("id %d", id)}
	}
	project := r.projects[id]
	if !project.Open {
		return nil, &ProjectClosedError{ID: id}
	}
	if call.Now > project.ProposalDeadline {
		return nil, &DeadlinePassedError{Deadline: project.ProposalDeadline, Now: call.Now}
	}

	project.Proposals = append(project.Proposals, models.Proposal{
		Freelancer:   caller.Address,
		Pitch:        in.Pitch,
		Amount:       in.Amount,
		DurationDays: in.DurationDays,
		SubmittedAt:  call.Now,
	})
	project.UpdatedAt = time.Unix(call.Now, 0).UTC()
	return &ProposalSubmitted{ProjectID: id, Freelancer: caller.Address}, nil
}

// Proposal is readable by the project's employer only — every other
// caller is denied, including the freelancer who submitted it.
func (r *Registry) Proposal(call Call, id uint64, index int) (*models.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id >= uint64(len(r.projects)) {
		return nil, &NotFoundError{Kind: "project", Ref: fmt.Sprintf("id %d", id)}
	}
	project := r.projects[id]
	if !sameAddress(call.Caller, project.Employer) {
		return nil, &AccessDeniedError{Need: "ownership of this project"}
	}
	if index < 0 || index >= len(project.Proposals) {
		return nil, &NotFoundError{Kind: "proposal", Ref: fmt.Sprintf("index %d", index)}
	}
	proposal := project.Proposals[index]
	return &proposal, nil
}

// ProfileRecord returns a deep-copied snapshot for persistence.
func (r *Registry) ProfileRecord(address string) (models.Profile, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[NormalizeAddress(address)]
	if !ok {
		return models.Profile{}, false
	}
	return copyProfile(p), true
}

// ProjectRecord returns a deep-copied snapshot for persistence.
func (r *Registry) ProjectRecord(id uint64) (models.Project, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id >= uint64(len(r.projects)) {
		return models.Project{}, false
	}
	return copyProject(r.projects[id]), true
}

// Restore rebuilds the in-memory state from persisted records. Projects
// must arrive ordered by id so the append-only sequence is preserved.
func (r *Registry) Restore(profiles []models.Profile, projects []models.Project) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles = make(map[string]*models.Profile, len(profiles))
	for i := range profiles {
		p := copyProfile(&profiles[i])
		r.profiles[NormalizeAddress(p.Address)] = &p
	}
	r.projects = make([]*models.Project, 0, len(projects))
	for i := range projects {
		p := copyProject(&projects[i])
		r.projects = append(r.projects, &p)
	}
}

// viewableProfile enforces the "self or employer" read rule against the
// currently stored roles, then resolves the target.
func (r *Registry) viewableProfile(caller, target string) (*models.Profile, error) {
	if !sameAddress(caller, target) {
		cp, ok := r.profiles[NormalizeAddress(caller)]
		if !ok || cp.Role != models.RoleEmployer {
			return nil, &AccessDeniedError{Need: "profile ownership or employer role"}
		}
	}
	p, ok := r.profiles[NormalizeAddress(target)]
	if !ok {
		return nil, &NotFoundError{Kind: "profile", Ref: NormalizeAddress(target)}
	}
	return p, nil
}

func (r *Registry) projectView(p *models.Project) ProjectView {
	return ProjectView{
		ID:               p.ID,
		Employer:         p.Employer,
		Title:            p.Title,
		Description:      p.Description,
		RequiredSkills:   copyStrings(p.RequiredSkills),
		DurationDays:     p.DurationDays,
		Amount:           p.Amount,
		Open:             p.Open,
		ProposalDeadline: p.ProposalDeadline,
		ProposalCount:    len(p.Proposals),
	}
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func copyExperiences(in []models.Experience) []models.Experience {
	if in == nil {
		return nil
	}
	return append([]models.Experience(nil), in...)
}

func copyPortfolio(in []models.PortfolioItem) []models.PortfolioItem {
	if in == nil {
		return nil
	}
	return append([]models.PortfolioItem(nil), in...)
}

func copyProfile(p *models.Profile) models.Profile {
	out := *p
	out.Skills = copyStrings(p.Skills)
	out.Experiences = copyExperiences(p.Experiences)
	out.Portfolio = copyPortfolio(p.Portfolio)
	return out
}

func copyProject(p *models.Project) models.Project {
	out := *p
	out.RequiredSkills = copyStrings(p.RequiredSkills)
	if p.Proposals != nil {
		out.Proposals = append([]models.Proposal(nil), p.Proposals...)
	}
	return out
}
