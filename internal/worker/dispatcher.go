// Package worker runs inbound-update jobs on an elastic pool while keeping
// each user's jobs sequential: replies to an open dialog are meaningless if
// processed out of arrival order, so one user never has two jobs in flight.
// Distinct users run concurrently.
package worker

import (
	"container/list"
	"errors"
	"sync"
	"time"
)

// Job is one unit of work bound to the user whose ordering it must respect.
type Job struct {
	UserID int64
	Run    func()
}

// ErrDispatcherBusy is returned when the intake queue is full.
var ErrDispatcherBusy = errors.New("dispatcher queue full")

type DispatcherConfig struct {
	MinWorkers        int
	MaxWorkers        int
	QueueSize         int
	WorkerIdleTimeout time.Duration
}

type userQueue struct {
	jobs     []Job
	enqueued bool // user is in the ready list
	running  bool // a job for this user is in flight
}

type Dispatcher struct {
	pool     *jobChannelPool
	jobQueue chan Job
	kick     chan struct{}

	mu        sync.Mutex
	queues    map[int64]*userQueue
	ready     *list.List // round-robin queue of user IDs with runnable jobs
	positions map[int64]*list.Element
}

func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	if cfg.MinWorkers <= 0 {
		cfg.MinWorkers = 1
	}
	if cfg.MaxWorkers < cfg.MinWorkers {
		cfg.MaxWorkers = cfg.MinWorkers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}

	d := &Dispatcher{
		pool:      newJobChannelPool(cfg.MinWorkers, cfg.MaxWorkers, cfg.WorkerIdleTimeout),
		jobQueue:  make(chan Job, cfg.QueueSize),
		kick:      make(chan struct{}, 1),
		queues:    make(map[int64]*userQueue),
		ready:     list.New(),
		positions: make(map[int64]*list.Element),
	}

	for i := 0; i < cfg.MinWorkers; i++ {
		d.pool.spawnWorker()
	}

	go d.run()
	return d
}

// Dispatch enqueues a job without blocking. ErrDispatcherBusy when full.
func (d *Dispatcher) Dispatch(job Job) error {
	if job.Run == nil || job.UserID <= 0 {
		return errors.New("invalid job")
	}
	select {
	case d.jobQueue <- job:
		return nil
	default:
		return ErrDispatcherBusy
	}
}

func (d *Dispatcher) run() {
	for {
		if d.dispatchOne() {
			select {
			case job := <-d.jobQueue:
				d.enqueueJob(job)
			default:
			}
			continue
		}
		select {
		case job := <-d.jobQueue:
			d.enqueueJob(job)
		case <-d.kick:
		}
	}
}

func (d *Dispatcher) enqueueJob(job Job) {
	d.mu.Lock()
	defer d.mu.Unlock()

	q := d.queues[job.UserID]
	if q == nil {
		q = &userQueue{}
		d.queues[job.UserID] = q
	}
	q.jobs = append(q.jobs, job)
	if q.enqueued || q.running {
		// Either already waiting its turn or mid-job; jobDone re-enqueues.
		return
	}
	q.enqueued = true
	d.positions[job.UserID] = d.ready.PushBack(job.UserID)
}

// dispatchOne takes the front ready user, hands its oldest job to a worker,
// and marks the user running so no second job of theirs can start.
func (d *Dispatcher) dispatchOne() bool {
	d.mu.Lock()
	elem := d.ready.Front()
	if elem == nil {
		d.mu.Unlock()
		return false
	}
	userID := elem.Value.(int64)
	q := d.queues[userID]
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	q.enqueued = false
	q.running = true
	d.ready.Remove(elem)
	delete(d.positions, userID)
	d.mu.Unlock()

	workerChan := d.pool.acquire()
	run := job.Run
	debugLog("[dispatcher] assign job for user %d", userID)
	workerChan <- Job{UserID: userID, Run: func() {
		run()
		d.jobDone(userID)
	}}
	return true
}

func (d *Dispatcher) jobDone(userID int64) {
	d.mu.Lock()
	q := d.queues[userID]
	if q == nil {
		d.mu.Unlock()
		return
	}
	q.running = false
	if len(q.jobs) == 0 {
		delete(d.queues, userID)
		d.mu.Unlock()
		return
	}
	if !q.enqueued {
		q.enqueued = true
		d.positions[userID] = d.ready.PushBack(userID)
	}
	d.mu.Unlock()

	select {
	case d.kick <- struct{}{}:
	default:
	}
}
