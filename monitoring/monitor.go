// Package monitoring turns a running simulation into a small web server so
// that the progress of a long run can be observed from outside the process.
package monitoring

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"

	"github.com/sarchlab/phasesim/control"
	"github.com/sarchlab/phasesim/processor"
)

// Monitor serves the state of one simulation run over HTTP.
type Monitor struct {
	portNumber int

	registry *control.Registry
	proc     *processor.SwitchableProcessor
	notices  *control.NoticeBuffer

	listener net.Listener
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port the server listens on. Ports below 1000 are
// rejected and replaced with a random port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is not allowed for the monitoring server. "+
				"Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterRegistry registers the handler registry whose cursors are reported.
func (m *Monitor) RegisterRegistry(r *control.Registry) {
	m.registry = r
}

// RegisterProcessor registers the processor whose state is reported.
func (m *Monitor) RegisterProcessor(p *processor.SwitchableProcessor) {
	m.proc = p
}

// RegisterNotices registers the buffer that retains emitted notices.
func (m *Monitor) RegisterNotices(b *control.NoticeBuffer) {
	m.notices = b
}

type handlerStatusRsp struct {
	Kind   string `json:"kind"`
	Cursor int    `json:"cursor"`
	Steps  int    `json:"steps"`
}

type statusRsp struct {
	ProcessorState string             `json:"processor_state"`
	ISA            string             `json:"isa"`
	Cores          int                `json:"cores"`
	Handlers       []handlerStatusRsp `json:"handlers"`
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/status", m.status)
	r.HandleFunc("/api/notices", m.listNotices)
	r.HandleFunc("/api/resource", m.listResources)

	return r
}

// StartServer starts the monitor as a web server.
func (m *Monitor) StartServer() {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.listener = listener

	fmt.Fprintf(os.Stderr,
		"Monitoring simulation with http://localhost:%d\n",
		listener.Addr().(*net.TCPAddr).Port)

	go func() {
		err := http.Serve(listener, m.router())
		if m.listener != nil {
			dieOnErr(err)
		}
	}()
}

// StopServer stops the monitoring server.
func (m *Monitor) StopServer() {
	if m.listener == nil {
		return
	}

	listener := m.listener
	m.listener = nil
	_ = listener.Close()
}

func (m *Monitor) status(w http.ResponseWriter, _ *http.Request) {
	rsp := statusRsp{}

	if m.proc != nil {
		rsp.ProcessorState = m.proc.CurrentState().String()
		rsp.ISA = m.proc.CurrentISA().String()
		rsp.Cores = m.proc.Cores()
	}

	if m.registry != nil {
		for _, kind := range m.registry.Kinds() {
			seq, err := m.registry.Lookup(kind)
			dieOnErr(err)

			rsp.Handlers = append(rsp.Handlers, handlerStatusRsp{
				Kind:   kind.String(),
				Cursor: seq.Cursor(),
				Steps:  seq.Len(),
			})
		}
	}

	sendJSON(w, rsp)
}

func (m *Monitor) listNotices(w http.ResponseWriter, _ *http.Request) {
	notices := []string{}
	if m.notices != nil {
		notices = m.notices.Snapshot()
	}

	sendJSON(w, notices)
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memorySize, err := proc.MemoryInfo()
	dieOnErr(err)

	sendJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func sendJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	err := json.NewEncoder(w).Encode(v)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		panic(err)
	}
}
